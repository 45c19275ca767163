package domain

import (
	"fmt"
	"sort"
	"strings"
)

// APIError is a non-2xx response of the banner API, decoded from
// the envelope {"message": "...", "errors": {"field": ["..."]}}.
type APIError struct {
	StatusCode int                 `json:"-"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("banner api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("banner api returned status %d: %s", e.StatusCode, e.Message)
}

// IsValidation reports whether the error carries per-field messages.
func (e *APIError) IsValidation() bool {
	return len(e.Errors) > 0
}

// ValidationMessages renders the per-field messages as "field: msg1, msg2", sorted by field.
func (e *APIError) ValidationMessages() []string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, field+": "+strings.Join(e.Errors[field], ", "))
	}
	return lines
}
