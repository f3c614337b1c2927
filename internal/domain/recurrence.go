package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frequency describes how often a recurring reminder repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid checks if the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// TimeOfDay represents a wall-clock time (hour and minute) applied to
// whatever calendar date the scheduler selects.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay creates a TimeOfDay, validating the hour and minute ranges.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour must be between 0 and 23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute must be between 0 and 59, got %d", minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time of day must be in HH:MM format, got %q", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String returns the time of day in HH:MM format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day to the calendar date of the given instant.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// MarshalJSON encodes the time of day as an "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RecurrenceRule is an immutable description of a repetition pattern.
// DaysOfWeek uses 0 (Sunday) through 6 (Saturday) and is meaningful only
// for weekly rules, where it must be non-empty.
type RecurrenceRule struct {
	Frequency  Frequency `json:"frequency"`
	DaysOfWeek []int     `json:"daysOfWeek,omitempty"`
	TimeOfDay  TimeOfDay `json:"timeOfDay"`
}

// NewRecurrenceRule creates a validated rule. Days are deduplicated and
// stored sorted ascending so rules compare predictably.
func NewRecurrenceRule(frequency Frequency, daysOfWeek []int, timeOfDay TimeOfDay) (RecurrenceRule, error) {
	if !frequency.IsValid() {
		return RecurrenceRule{}, fmt.Errorf("unknown frequency %q", frequency)
	}

	rule := RecurrenceRule{Frequency: frequency, TimeOfDay: timeOfDay}

	if frequency == FrequencyWeekly {
		if len(daysOfWeek) == 0 {
			return RecurrenceRule{}, fmt.Errorf("weekly rule requires at least one day of week")
		}
		rule.DaysOfWeek = normalizeDays(daysOfWeek)
		for _, day := range rule.DaysOfWeek {
			if day < 0 || day > 6 {
				return RecurrenceRule{}, fmt.Errorf("day of week must be between 0 and 6, got %d", day)
			}
		}
	}

	return rule, nil
}

// SortedDays returns the rule's weekday set sorted ascending. The slice is
// a copy and safe to modify.
func (r RecurrenceRule) SortedDays() []int {
	return normalizeDays(r.DaysOfWeek)
}

// Equal reports whether two rules describe the same pattern. The weekday
// sets are compared order-independently.
func (r RecurrenceRule) Equal(other RecurrenceRule) bool {
	if r.Frequency != other.Frequency || r.TimeOfDay != other.TimeOfDay {
		return false
	}
	a, b := r.SortedDays(), other.SortedDays()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns a human-readable description, e.g. "Weekly on Mon, Wed".
func (r RecurrenceRule) String() string {
	switch r.Frequency {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		names := make([]string, 0, len(r.DaysOfWeek))
		for _, day := range r.SortedDays() {
			names = append(names, time.Weekday(day).String()[:3])
		}
		return "Weekly on " + strings.Join(names, ", ")
	case FrequencyMonthly:
		return "Monthly"
	default:
		return "Recurring"
	}
}

func normalizeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	normalized := make([]int, 0, len(days))
	for _, day := range days {
		if !seen[day] {
			seen[day] = true
			normalized = append(normalized, day)
		}
	}
	sort.Ints(normalized)
	return normalized
}
