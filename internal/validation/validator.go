package validation

import (
	"strings"
	"time"
)

const (
	defaultTextMinLength = 1
	defaultTextMaxLength = 255
)

// Validator provides common validation utilities
type Validator struct {
	textMinLength int
	textMaxLength int
}

// NewValidator creates a new validator instance with default limits
func NewValidator() *Validator {
	return &Validator{
		textMinLength: defaultTextMinLength,
		textMaxLength: defaultTextMaxLength,
	}
}

// NewValidatorWithLimits creates a validator with explicit text length limits
func NewValidatorWithLimits(minLength, maxLength int) *Validator {
	return &Validator{
		textMinLength: minLength,
		textMaxLength: maxLength,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTextLength checks if a string length is within the configured limits
func (v *Validator) IsValidTextLength(s string) bool {
	length := len(strings.TrimSpace(s))
	return length >= v.textMinLength && length <= v.textMaxLength
}

// IsValidWeekday checks if a weekday number is within 0 (Sunday) to 6 (Saturday)
func (v *Validator) IsValidWeekday(day int) bool {
	return day >= 0 && day <= 6
}

// IsFutureInstant checks if an instant lies strictly after the reference instant
func (v *Validator) IsFutureInstant(t, now time.Time) bool {
	return t.After(now)
}

// IsSameOrFutureDate checks that the calendar date of t is not before the
// calendar date of now. Time of day is ignored: a start date of "today" is
// always acceptable even late in the day, because the scheduler pushes a
// passed slot forward itself.
func (v *Validator) IsSameOrFutureDate(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty != ny {
		return ty > ny
	}
	if tm != nm {
		return tm > nm
	}
	return td >= nd
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
