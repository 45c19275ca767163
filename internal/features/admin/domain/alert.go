package domain

import (
	"errors"

	banners "storefront-banners/internal/features/banners/domain"
)

// Alert is the blocking message shown after a failed admin action.
type Alert struct {
	Message string   `json:"message"`
	Lines   []string `json:"errors,omitempty"`
}

// NewAlert presents err: per-field lines for validation failures,
// otherwise the API message, otherwise fallback.
func NewAlert(fallback string, err error) Alert {
	var apiErr *banners.APIError
	if !errors.As(err, &apiErr) {
		return Alert{Message: fallback}
	}

	if apiErr.IsValidation() {
		msg := apiErr.Message
		if msg == "" {
			msg = "Validation failed"
		}
		return Alert{Message: msg, Lines: apiErr.ValidationMessages()}
	}

	if apiErr.Message != "" {
		return Alert{Message: apiErr.Message}
	}
	return Alert{Message: fallback}
}
