package models

import "errors"

// Error kinds surfaced by the model layer. Callers match them with
// errors.Is; translating them into user-facing messages is the handlers'
// job. Store failures propagate as-is.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrNoFieldsProvided     = errors.New("no valid fields provided")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateUnique      = errors.New("value already taken")
)
