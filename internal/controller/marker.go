package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/dirty"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/models"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

const (
	msgMarkSuccess    = "Attendance recorded."
	msgSaveAllSuccess = "Attendance saved for all selected."
)

// Marker is the bulk attendance-marking form: a roster of employees, an
// active date, and a dirty tracker deciding what a save submits.
type Marker struct {
	mu      sync.Mutex
	client  *api.Client
	hub     *notify.Hub
	marked  *RefreshTrigger
	log     *zap.Logger
	tracker *dirty.Tracker
	roster  []models.Employee
	date    string
	saving  bool
}

func NewMarker(client *api.Client, hub *notify.Hub, marked *RefreshTrigger, log *zap.Logger) *Marker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Marker{
		client:  client,
		hub:     hub,
		marked:  marked,
		log:     log,
		tracker: dirty.NewTracker(),
	}
}

func (m *Marker) Tracker() *dirty.Tracker { return m.tracker }

func (m *Marker) Roster() []models.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Employee, len(m.roster))
	copy(out, m.roster)
	return out
}

func (m *Marker) Date() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.date
}

func (m *Marker) Saving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saving
}

// LoadRoster fetches the employees the form lists. A failure leaves an
// empty roster; the form renders its empty state.
func (m *Marker) LoadRoster(ctx context.Context) error {
	body, err := m.client.Get(ctx, "/api/employees", nil)
	if err != nil {
		m.setRoster(nil)
		return err
	}
	employees, err := api.DecodeList[models.Employee](body, "employees")
	if err != nil {
		m.setRoster(nil)
		return err
	}
	m.setRoster(employees)
	return nil
}

func (m *Marker) setRoster(employees []models.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roster = employees
}

// SetDate switches the active day and reloads both sides of the tracker
// from a fresh fetch. On fetch failure the tracker is emptied so stale
// selections from the previous date cannot leak into a save.
func (m *Marker) SetDate(ctx context.Context, date string) error {
	m.mu.Lock()
	m.date = date
	m.mu.Unlock()
	return m.reloadSaved(ctx)
}

func (m *Marker) reloadSaved(ctx context.Context) error {
	date := m.Date()
	if date == "" {
		m.tracker.LoadSaved(nil)
		return nil
	}

	body, err := m.client.Get(ctx, "/api/attendance", nil)
	if err != nil {
		m.tracker.LoadSaved(nil)
		return err
	}
	records, err := api.DecodeList[models.AttendanceRecord](body, "attendance", "records")
	if err != nil {
		m.tracker.LoadSaved(nil)
		return err
	}

	saved := map[string]string{}
	for _, record := range records {
		if record.Date == date && record.EmployeeID != "" && record.Status != "" {
			saved[record.EmployeeID] = record.Status
		}
	}
	m.tracker.LoadSaved(saved)
	return nil
}

func (m *Marker) SetStatus(employeeID, status string) {
	m.tracker.SetPending(employeeID, status)
}

// SaveRow submits a single row. Saving a row whose pending status equals
// its saved status is a no-op: no request is issued.
func (m *Marker) SaveRow(ctx context.Context, employeeID string) error {
	date := m.Date()
	if date == "" {
		m.hub.Error(msgSelectDate)
		return errors.New(msgSelectDate)
	}
	status, ok := m.tracker.BeginSave(employeeID)
	if !ok {
		return nil
	}

	payload := map[string]string{
		"employeeId": employeeID,
		"date":       date,
		"status":     status,
	}
	_, err := m.client.Post(ctx, "/api/attendance", payload)
	m.tracker.EndSave(employeeID, err == nil)
	if err != nil {
		m.hub.Error(displayMessage(err))
		return err
	}

	m.hub.Success(msgMarkSuccess)
	if m.marked != nil {
		m.marked.Fire()
	}
	return nil
}

// SaveAll submits exactly the dirty rows as one batch. A partial failure is
// a qualified success: the message carries the failure count and only
// confirmed rows are promoted to saved. When every record fails it is a
// full failure and nothing is promoted.
func (m *Marker) SaveAll(ctx context.Context) error {
	date := m.Date()
	if date == "" {
		m.hub.Error(msgSelectDate)
		return errors.New(msgSelectDate)
	}

	entries := m.tracker.DirtyEntries()
	if len(entries) == 0 {
		return nil
	}

	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		return nil
	}
	m.saving = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.saving = false
		m.mu.Unlock()
	}()

	payload := map[string]any{"date": date, "records": entries}
	body, err := m.client.Post(ctx, "/api/attendance/bulk", payload)
	if err != nil {
		m.hub.Error(displayMessage(err))
		return err
	}

	var result models.BulkAttendanceResult
	if err := json.Unmarshal(body, &result); err != nil {
		m.hub.Error(msgGenericError)
		return fmt.Errorf("decode bulk result: %w", err)
	}

	if result.Failed >= len(entries) {
		m.hub.Error(msgGenericError)
		return fmt.Errorf("bulk save rejected all %d records", len(entries))
	}

	if result.Failed > 0 {
		if len(result.FailedIDs) > 0 {
			m.tracker.PromoteEntries(entries, result.FailedIDs)
		} else {
			// The server counted failures without naming them; rather than
			// guess, re-fetch the saved state for the date.
			m.tracker.MarkStale()
			if err := m.reloadSaved(ctx); err != nil {
				m.log.Warn("reload after partial bulk failure", zap.Error(err))
			}
		}
		m.hub.Success(fmt.Sprintf("%s (%d failed.)", msgSaveAllSuccess, result.Failed))
	} else {
		m.tracker.PromoteEntries(entries, nil)
		m.hub.Success(msgSaveAllSuccess)
	}

	if m.marked != nil {
		m.marked.Fire()
	}
	return nil
}
