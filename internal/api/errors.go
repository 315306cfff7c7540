package api

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the backend has no such resource or does
	// not implement the endpoint.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict indicates a mutation carried a stale
	// inventory version: another writer moved the record forward.
	// There is no merge; callers must re-read and resubmit manually.
	ErrVersionConflict = errors.New("inventory version conflict")
)

const genericErrorMessage = "request failed, please try again"

// FieldError is one entry of the backend error envelope.
type FieldError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a decoded backend failure. It keeps the whole envelope but
// its Error() string is what the console shows the user: the first
// field message, then the top-level message, then a generic fallback.
type Error struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return e.Errors[0].Message
	}
	if e.Message != "" {
		return e.Message
	}
	return genericErrorMessage
}

// Is maps conflict and not-found responses onto the package sentinels
// so callers can branch with errors.Is without inspecting the envelope.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrVersionConflict:
		return e.conflict()
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func (e *Error) conflict() bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	for _, fe := range e.Errors {
		if fe.Code == "VERSION_CONFLICT" {
			return true
		}
	}
	return false
}
