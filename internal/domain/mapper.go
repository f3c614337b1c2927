package domain

import (
	"fmt"

	"remindik/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task, flattening the
// recurrence rule into nullable columns.
func (m *TaskMapper) ToDatabase(task Task) *sqlite.Task {
	dbTask := &sqlite.Task{
		ID:           task.ID,
		Text:         task.Text,
		Kind:         string(task.Kind),
		Completed:    task.Completed,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		ScheduledFor: task.ScheduledFor,
		NextDue:      task.NextDue,
	}

	if task.Recurrence != nil {
		frequency := string(task.Recurrence.Frequency)
		timeOfDay := task.Recurrence.TimeOfDay.String()
		dbTask.Frequency = &frequency
		dbTask.TimeOfDay = &timeOfDay
		if len(task.Recurrence.DaysOfWeek) > 0 {
			days := sqlite.FormatDaysForDB(task.Recurrence.DaysOfWeek)
			dbTask.DaysOfWeek = &days
		}
	}

	return dbTask
}

// FromDatabase converts a database Task back to a domain Task, rebuilding
// the recurrence rule from its flattened columns.
func (m *TaskMapper) FromDatabase(dbTask *sqlite.Task) (Task, error) {
	task := Task{
		ID:           dbTask.ID,
		Text:         dbTask.Text,
		Kind:         TaskKind(dbTask.Kind),
		Completed:    dbTask.Completed,
		CompletedAt:  dbTask.CompletedAt,
		CreatedAt:    dbTask.CreatedAt,
		ScheduledFor: dbTask.ScheduledFor,
		NextDue:      dbTask.NextDue,
	}

	if dbTask.Frequency != nil {
		if dbTask.TimeOfDay == nil {
			return Task{}, fmt.Errorf("task %s: recurrence has no time of day", dbTask.ID)
		}
		timeOfDay, err := ParseTimeOfDay(*dbTask.TimeOfDay)
		if err != nil {
			return Task{}, fmt.Errorf("task %s: %w", dbTask.ID, err)
		}

		var days []int
		if dbTask.DaysOfWeek != nil {
			days, err = sqlite.ParseDaysFromDB(*dbTask.DaysOfWeek)
			if err != nil {
				return Task{}, fmt.Errorf("task %s: %w", dbTask.ID, err)
			}
		}

		rule, err := NewRecurrenceRule(Frequency(*dbTask.Frequency), days, timeOfDay)
		if err != nil {
			return Task{}, fmt.Errorf("task %s: %w", dbTask.ID, err)
		}
		task.Recurrence = &rule
	}

	return task, nil
}

// ToDatabaseSlice converts a slice of domain Tasks to database Tasks.
func (m *TaskMapper) ToDatabaseSlice(tasks []Task) []*sqlite.Task {
	dbTasks := make([]*sqlite.Task, len(tasks))
	for i, task := range tasks {
		dbTasks[i] = m.ToDatabase(task)
	}
	return dbTasks
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) ([]Task, error) {
	tasks := make([]Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		task, err := m.FromDatabase(dbTask)
		if err != nil {
			return nil, err
		}
		tasks[i] = task
	}
	return tasks, nil
}
