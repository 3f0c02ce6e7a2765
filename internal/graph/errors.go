package graph

import (
	"errors"
	"fmt"
)

var (
	ErrConversationNotFound = errors.New("no conversation found for participant")
	ErrMalformedPage        = errors.New("response has no data field")
)

// StatusError is returned when the Graph API answers with a non-success status.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("graph api %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("graph api %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}
