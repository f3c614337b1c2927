package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskKind distinguishes the three reminder variants.
type TaskKind string

const (
	// KindImmediate is a plain reminder with no due instant.
	KindImmediate TaskKind = "immediate"
	// KindScheduled is a one-time reminder due at a fixed instant.
	KindScheduled TaskKind = "scheduled"
	// KindRecurring repeats per a RecurrenceRule and tracks its next due instant.
	KindRecurring TaskKind = "recurring"
)

// IsValid checks if the kind is one of the supported variants.
func (k TaskKind) IsValid() bool {
	switch k {
	case KindImmediate, KindScheduled, KindRecurring:
		return true
	default:
		return false
	}
}

// Task represents a single reminder. Exactly one of the three kinds applies;
// fields belonging to the other kinds stay nil.
type Task struct {
	ID           string          `json:"id"`
	Text         string          `json:"text"`
	Kind         TaskKind        `json:"kind"`
	Completed    bool            `json:"completed"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	ScheduledFor *time.Time      `json:"scheduledFor,omitempty"`
	Recurrence   *RecurrenceRule `json:"recurrence,omitempty"`
	NextDue      *time.Time      `json:"nextDue,omitempty"`
}

// NewImmediateTask creates a reminder with no due instant.
func NewImmediateTask(text string, now time.Time) Task {
	return Task{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      KindImmediate,
		CreatedAt: now,
	}
}

// NewScheduledTask creates a one-time reminder due at the given instant.
// The instant is immutable for the task's lifetime.
func NewScheduledTask(text string, at time.Time, now time.Time) Task {
	return Task{
		ID:           uuid.NewString(),
		Text:         text,
		Kind:         KindScheduled,
		CreatedAt:    now,
		ScheduledFor: &at,
	}
}

// NewRecurringTask creates a recurring reminder with a pre-computed first
// due instant. Due-date math lives in the schedule package; the task only
// stores the result.
func NewRecurringTask(text string, rule RecurrenceRule, nextDue time.Time, now time.Time) Task {
	return Task{
		ID:         uuid.NewString(),
		Text:       text,
		Kind:       KindRecurring,
		CreatedAt:  now,
		Recurrence: &rule,
		NextDue:    &nextDue,
	}
}

// Complete marks the task completed at the given instant.
func (t *Task) Complete(now time.Time) {
	t.Completed = true
	t.CompletedAt = &now
}

// Reopen clears the completed state.
func (t *Task) Reopen() {
	t.Completed = false
	t.CompletedAt = nil
}

// DueAt returns the task's due instant: NextDue for recurring tasks,
// ScheduledFor for scheduled ones, nil for immediate tasks.
func (t Task) DueAt() *time.Time {
	switch t.Kind {
	case KindRecurring:
		return t.NextDue
	case KindScheduled:
		return t.ScheduledFor
	default:
		return nil
	}
}

// IsValid checks the kind-specific field invariants.
func (t Task) IsValid() bool {
	if t.Text == "" || !t.Kind.IsValid() {
		return false
	}
	switch t.Kind {
	case KindScheduled:
		return t.ScheduledFor != nil && t.Recurrence == nil && t.NextDue == nil
	case KindRecurring:
		return t.Recurrence != nil && t.NextDue != nil && t.ScheduledFor == nil
	default:
		return t.ScheduledFor == nil && t.Recurrence == nil && t.NextDue == nil
	}
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}
