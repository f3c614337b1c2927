package validation

import (
	"fmt"
	"time"
)

// TaskValidator provides validation for task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default text limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithLimits creates a task validator with configured text
// length limits. Non-positive limits fall back to the defaults.
func NewTaskValidatorWithLimits(minLength, maxLength int) *TaskValidator {
	if minLength <= 0 {
		minLength = defaultTextMinLength
	}
	if maxLength <= 0 {
		maxLength = defaultTextMaxLength
	}
	return &TaskValidator{
		validator: NewValidatorWithLimits(minLength, maxLength),
	}
}

// ValidateText validates reminder text for creation or update
func (tv *TaskValidator) ValidateText(text string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimString(text)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("text")
		return validationError
	}

	if !tv.validator.IsValidTextLength(trimmed) {
		reason := fmt.Sprintf("must be between %d and %d characters", tv.validator.textMinLength, tv.validator.textMaxLength)
		validationError.AddInvalidRangeError("text", trimmed, reason)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateScheduledFor validates a one-time reminder's due instant, which
// must lie strictly in the future at creation time
func (tv *TaskValidator) ValidateScheduledFor(at, now time.Time) error {
	if at.IsZero() {
		validationError := NewValidationError()
		validationError.AddRequiredError("scheduled_for")
		return validationError
	}
	if !tv.validator.IsFutureInstant(at, now) {
		validationError := NewValidationError()
		validationError.AddPastInstantError("scheduled_for", at)
		return validationError
	}
	return nil
}

// ValidateStartDate validates a recurring reminder's start date. The date
// may be today; only dates strictly in the past are rejected, since the
// scheduler itself pushes an already-passed slot forward.
func (tv *TaskValidator) ValidateStartDate(startDate, now time.Time) error {
	if startDate.IsZero() {
		validationError := NewValidationError()
		validationError.AddRequiredError("start_date")
		return validationError
	}
	if !tv.validator.IsSameOrFutureDate(startDate, now) {
		validationError := NewValidationError()
		validationError.AddPastInstantError("start_date", startDate)
		return validationError
	}
	return nil
}

// ValidateID validates a task identifier
func (tv *TaskValidator) ValidateID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("id")
		return validationError
	}
	return nil
}

// GetValidText returns a cleaned reminder text if valid
func (tv *TaskValidator) GetValidText(text string) (string, error) {
	if err := tv.ValidateText(text); err != nil {
		return "", err
	}
	return tv.validator.TrimString(text), nil
}
