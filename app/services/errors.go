package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"blogapi/app/models"
	"blogapi/app/repositories"
)

var (
	// ErrNotFound is the repository sentinel, re-exported so callers need
	// not import the storage layer.
	ErrNotFound     = repositories.ErrNotFound
	ErrUnauthorized = errors.New("invalid username or password")
	ErrConflict     = errors.New("username already taken")
)

// ValidationError reports a payload that cannot be persisted. Fields maps
// JSON field names to messages and may be empty for cross-record rules.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

func invalidField(field, message string) error {
	return &ValidationError{Message: "invalid payload", Fields: map[string]string{field: message}}
}

// checkPayload runs struct validation and converts failures.
func checkPayload(err error) error {
	if err == nil {
		return nil
	}
	if fields := models.FieldErrors(err); fields != nil {
		return &ValidationError{Message: "invalid payload", Fields: fields}
	}
	return invalid(err.Error())
}
