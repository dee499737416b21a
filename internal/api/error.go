package api

import "errors"

// Error is a failed HTTP exchange: the status code plus the most readable
// message the response body offered.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// API error (transport failures, decode failures).
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
