package sqlite

import (
	"database/sql"
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row.
// Time columns are stored as RFC3339 strings and parsed on the way out.
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var (
		completedAt  sql.NullString
		createdAt    string
		scheduledFor sql.NullString
		frequency    sql.NullString
		daysOfWeek   sql.NullString
		timeOfDay    sql.NullString
		nextDue      sql.NullString
	)

	err := scanner.Scan(
		&task.ID,
		&task.Text,
		&task.Kind,
		&task.Completed,
		&completedAt,
		&createdAt,
		&scheduledFor,
		&frequency,
		&daysOfWeek,
		&timeOfDay,
		&nextDue,
	)
	if err != nil {
		return nil, err
	}

	task.CreatedAt, err = ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	if task.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return nil, err
	}
	if task.ScheduledFor, err = parseNullTime(scheduledFor); err != nil {
		return nil, err
	}
	if task.NextDue, err = parseNullTime(nextDue); err != nil {
		return nil, err
	}
	if frequency.Valid {
		task.Frequency = &frequency.String
	}
	if daysOfWeek.Valid {
		task.DaysOfWeek = &daysOfWeek.String
	}
	if timeOfDay.Valid {
		task.TimeOfDay = &timeOfDay.String
	}

	return task, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
