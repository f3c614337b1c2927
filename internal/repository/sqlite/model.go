package sqlite

import "time"

// Task is the database representation of a reminder task. Recurrence is
// flattened into nullable columns so every kind of task fits one row.
type Task struct {
	ID           string
	Text         string
	Kind         string
	Completed    bool
	CompletedAt  *time.Time
	CreatedAt    time.Time
	ScheduledFor *time.Time
	Frequency    *string
	DaysOfWeek   *string // comma separated weekday numbers, 0 = Sunday
	TimeOfDay    *string // "HH:MM"
	NextDue      *time.Time
}
