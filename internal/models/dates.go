package models

import (
	"fmt"
	"time"
)

// Canonical persisted date/time layouts. Project dates are stored date-only,
// task timestamps in 12-hour form with a meridiem marker. The stored text is
// the compatibility contract, so these never change.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 03:04:05 PM"

	// InputTimestampLayout is the HTML datetime-local shape produced by the
	// task forms; handlers convert it to TimestampLayout before calling the
	// model layer.
	InputTimestampLayout = "2006-01-02T15:04"
)

// NormalizeDate reparses s against the canonical date layout and returns it
// reformatted. Empty input passes through unchanged.
func NormalizeDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	t, err := time.Parse(DateLayout, s)

	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return t.Format(DateLayout), nil
}

// NormalizeTimestamp reparses s against the canonical timestamp layout and
// returns it reformatted. Empty input passes through unchanged.
func NormalizeTimestamp(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	t, err := time.Parse(TimestampLayout, s)

	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return t.Format(TimestampLayout), nil
}

// NormalizeInputTimestamp converts a datetime-local form value into the
// canonical timestamp form.
func NormalizeInputTimestamp(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	t, err := time.Parse(InputTimestampLayout, s)

	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return t.Format(TimestampLayout), nil
}

// ParseDate converts a persisted canonical date back into a time value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return t, nil
}

// ParseTimestamp converts a persisted canonical timestamp back into a time
// value.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return t, nil
}
