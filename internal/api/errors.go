package api

import (
	"errors"
	"fmt"
)

// Error is the normalized failure for a backend call. Status is the HTTP
// status code when the transport reached the server (0 otherwise); Message is
// the server-provided error string when one was present.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	case e.Message != "":
		return "api: " + e.Message
	case e.Status != 0:
		return fmt.Sprintf("api: status %d", e.Status)
	case e.Err != nil:
		return "api: " + e.Err.Error()
	default:
		return "api: request failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ServerMessage returns the backend's error string, or "" when the failure
// carried none (callers fall back to a generic localized message).
func ServerMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}
