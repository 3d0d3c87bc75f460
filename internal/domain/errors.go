package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBackendUnavailable means the store or its schema is missing. The
	// caller's policy is to fall back to the demonstration dataset and keep
	// going in a degraded, non-persistent mode.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = errors.New("not found")
)

// Validation failure reasons for the order form.
const (
	ReasonMissingPeriod    = "missing_period"
	ReasonMissingDate      = "missing_date"
	ReasonNoActiveProducts = "no_active_products"
	ReasonIncompleteFields = "incomplete_fields"
)

// ValidationError blocks a save/submit. No partial write happens when one is
// returned.
type ValidationError struct {
	Reason string
	// Codes lists the product codes with incomplete fields, catalog order.
	Codes []string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingPeriod:
		return "period is required"
	case ReasonMissingDate:
		return "launch date is required"
	case ReasonNoActiveProducts:
		return "at least one product must be selected"
	case ReasonIncompleteFields:
		return fmt.Sprintf("incomplete fields for products: %s", strings.Join(e.Codes, ", "))
	}
	return "validation failed"
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
