package validation

import (
	"remindik/internal/domain"
)

// RecurrenceValidator validates recurrence rule input at the form boundary,
// before it ever reaches the scheduling engine. The rule constructor checks
// the same constraints again defensively.
type RecurrenceValidator struct {
	validator *Validator
}

// NewRecurrenceValidator creates a new recurrence validator
func NewRecurrenceValidator() *RecurrenceValidator {
	return &RecurrenceValidator{
		validator: NewValidator(),
	}
}

// ValidateRule validates frequency, weekday set and time of day together
func (rv *RecurrenceValidator) ValidateRule(frequency domain.Frequency, daysOfWeek []int, timeOfDay domain.TimeOfDay) error {
	validationError := NewValidationError()

	if !frequency.IsValid() {
		validationError.AddInvalidValueError("frequency", string(frequency), "must be daily, weekly or monthly")
	}

	if frequency == domain.FrequencyWeekly {
		if len(daysOfWeek) == 0 {
			validationError.AddRequiredError("days_of_week")
		}
		for _, day := range daysOfWeek {
			if !rv.validator.IsValidWeekday(day) {
				validationError.AddInvalidRangeError("days_of_week", day, "weekdays are numbered 0 (Sunday) to 6 (Saturday)")
			}
		}
	}

	if timeOfDay.Hour < 0 || timeOfDay.Hour > 23 {
		validationError.AddInvalidRangeError("time_of_day", timeOfDay.Hour, "hour must be between 0 and 23")
	}
	if timeOfDay.Minute < 0 || timeOfDay.Minute > 59 {
		validationError.AddInvalidRangeError("time_of_day", timeOfDay.Minute, "minute must be between 0 and 59")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
