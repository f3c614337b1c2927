package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindik/internal/domain"
)

func TestRecurrenceValidator_ValidateRule(t *testing.T) {
	rv := NewRecurrenceValidator()
	nine := domain.TimeOfDay{Hour: 9}

	tests := []struct {
		name      string
		frequency domain.Frequency
		days      []int
		timeOfDay domain.TimeOfDay
		wantField string
	}{
		{
			name:      "valid daily rule",
			frequency: domain.FrequencyDaily,
			timeOfDay: nine,
		},
		{
			name:      "valid weekly rule",
			frequency: domain.FrequencyWeekly,
			days:      []int{0, 6},
			timeOfDay: nine,
		},
		{
			name:      "valid monthly rule",
			frequency: domain.FrequencyMonthly,
			timeOfDay: nine,
		},
		{
			name:      "unknown frequency",
			frequency: domain.Frequency("hourly"),
			timeOfDay: nine,
			wantField: "frequency",
		},
		{
			name:      "weekly without days",
			frequency: domain.FrequencyWeekly,
			days:      nil,
			timeOfDay: nine,
			wantField: "days_of_week",
		},
		{
			name:      "weekly with out of range day",
			frequency: domain.FrequencyWeekly,
			days:      []int{1, 7},
			timeOfDay: nine,
			wantField: "days_of_week",
		},
		{
			name:      "hour out of range",
			frequency: domain.FrequencyDaily,
			timeOfDay: domain.TimeOfDay{Hour: 24},
			wantField: "time_of_day",
		},
		{
			name:      "minute out of range",
			frequency: domain.FrequencyDaily,
			timeOfDay: domain.TimeOfDay{Hour: 9, Minute: 61},
			wantField: "time_of_day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rv.ValidateRule(tt.frequency, tt.days, tt.timeOfDay)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.NotEmpty(t, validationErr.GetFieldErrors(tt.wantField))
		})
	}
}

func TestRecurrenceValidator_CollectsMultipleErrors(t *testing.T) {
	rv := NewRecurrenceValidator()

	err := rv.ValidateRule(domain.FrequencyWeekly, nil, domain.TimeOfDay{Hour: 25, Minute: -1})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 3)
	assert.Contains(t, err.Error(), "multiple validation errors")
}
