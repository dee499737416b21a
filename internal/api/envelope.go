package api

import (
	"encoding/json"
	"fmt"
)

// DecodeList decodes a collection response. Backends wrap lists three ways:
// a bare array, the array under an entity-named key, or under "data".
// Anything else is a decode error rather than a silent empty list.
func DecodeList[T any](body []byte, entityKeys ...string) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode list: response is neither an array nor an object")
	}

	for _, key := range append(entityKeys, "data") {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode list: key %q is not an array: %w", key, err)
		}
		return list, nil
	}

	return nil, fmt.Errorf("decode list: no recognized collection key in response")
}
