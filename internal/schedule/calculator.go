package schedule

import (
	"time"

	"remindik/internal/domain"
)

// FirstDueDate computes the initial due instant for a recurring reminder
// created with the given start date. The result is always strictly after
// now: a candidate whose time of day already passed is pushed to the next
// day, week or month.
func FirstDueDate(rule domain.RecurrenceRule, startDate, now time.Time) time.Time {
	candidate := rule.TimeOfDay.On(startDate)

	switch rule.Frequency {
	case domain.FrequencyDaily:
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
	case domain.FrequencyWeekly:
		days := rule.SortedDays()
		currentWeekday := int(candidate.Weekday())

		// Smallest weekday >= the candidate's weekday; when none remains
		// this week, wrap to the smallest day and push a week out first.
		target, found := firstAtLeast(days, currentWeekday)
		if !found {
			target = days[0]
			candidate = candidate.AddDate(0, 0, 7)
		}
		candidate = candidate.AddDate(0, 0, target-currentWeekday)

		// Same-day match whose time already passed rolls a full week.
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 7)
		}
	case domain.FrequencyMonthly:
		if !candidate.After(now) {
			candidate = addMonthClamped(candidate)
		}
	}

	return candidate
}

// NextDueDate computes the due instant of the occurrence spawned right
// after a completion. It is always relative to now (the completion
// instant), not the previous due date, and always lands strictly in the
// future: a daily rule moves a full day forward and a weekly rule matches
// strictly-greater weekdays, so completing early on a due weekday rolls to
// the next eligible day rather than re-triggering the same one.
func NextDueDate(rule domain.RecurrenceRule, now time.Time) time.Time {
	candidate := rule.TimeOfDay.On(now)

	switch rule.Frequency {
	case domain.FrequencyDaily:
		candidate = candidate.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		days := rule.SortedDays()
		currentWeekday := int(candidate.Weekday())

		target, found := firstGreater(days, currentWeekday)
		if !found {
			target = days[0]
			candidate = candidate.AddDate(0, 0, 7)
		}
		candidate = candidate.AddDate(0, 0, target-currentWeekday)
	case domain.FrequencyMonthly:
		candidate = addMonthClamped(candidate)
	}

	return candidate
}

// firstAtLeast returns the smallest element >= n in a sorted slice.
func firstAtLeast(sorted []int, n int) (int, bool) {
	for _, v := range sorted {
		if v >= n {
			return v, true
		}
	}
	return 0, false
}

// firstGreater returns the smallest element > n in a sorted slice.
func firstGreater(sorted []int, n int) (int, bool) {
	for _, v := range sorted {
		if v > n {
			return v, true
		}
	}
	return 0, false
}

// addMonthClamped advances one calendar month, clamping the day of month
// to the last valid day of the target month (Jan 31 -> Feb 28/29) instead
// of letting the date roll over into March.
func addMonthClamped(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), 0, 0, t.Location()).AddDate(0, 1, 0)

	day := t.Day()
	if last := daysInMonth(firstOfNext.Month(), firstOfNext.Year()); day > last {
		day = last
	}

	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, t.Hour(), t.Minute(), 0, 0, t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(month time.Month, year int) int {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
