package models

import "encoding/json"

// AdminLogEntry is an append-only audit line; read-only on the client.
type AdminLogEntry struct {
	ID         int64  `json:"id"`
	CreatedAt  string `json:"createdAt"`
	Action     string `json:"action"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Details    string `json:"details"`
}

func (e *AdminLogEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             int64  `json:"id"`
		CreatedAt      string `json:"createdAt"`
		CreatedAtSnake string `json:"created_at"`
		Action         string `json:"action"`
		EntityType     string `json:"entityType"`
		EntityTypeAlt  string `json:"entity_type"`
		EntityID       string `json:"entityId"`
		EntityIDSnake  string `json:"entity_id"`
		Details        string `json:"details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.ID
	e.CreatedAt = firstString(raw.CreatedAt, raw.CreatedAtSnake)
	e.Action = raw.Action
	e.EntityType = firstString(raw.EntityType, raw.EntityTypeAlt)
	e.EntityID = firstString(raw.EntityID, raw.EntityIDSnake)
	e.Details = raw.Details
	return nil
}

// SearchText lists the fields the admin-log search matches against.
func (e AdminLogEntry) SearchText() []string {
	return []string{e.Action, e.EntityType, e.EntityID, e.Details}
}
