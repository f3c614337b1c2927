package viewer

import "time"

// Urgency buckets the time remaining before a due instant into six levels.
// Level 1 is calm, level 6 is due within five minutes or overdue. The
// viewer keys its styling off these levels.
const (
	urgencyGentle   = 1
	urgencySubtle   = 2
	urgencyModerate = 3
	urgencyHigh     = 4
	urgencyIntense  = 5
	urgencyExtreme  = 6
)

// UrgencyLevel maps remaining time to an urgency level. Negative durations
// mean overdue.
func UrgencyLevel(remaining time.Duration) int {
	switch {
	case remaining <= 5*time.Minute:
		return urgencyExtreme
	case remaining <= 15*time.Minute:
		return urgencyIntense
	case remaining <= 30*time.Minute:
		return urgencyHigh
	case remaining <= time.Hour:
		return urgencyModerate
	case remaining <= 2*time.Hour:
		return urgencySubtle
	default:
		return urgencyGentle
	}
}

// DoneAllowed reports whether the done action is offered for the given
// remaining time. Tasks without a due instant pass hasDue=false and can
// always be completed.
func DoneAllowed(remaining time.Duration, hasDue bool) bool {
	if !hasDue {
		return true
	}
	return remaining <= 5*time.Minute
}
