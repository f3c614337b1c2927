package services

import (
	"context"
	"time"

	"remindik/internal/domain"
)

// RecurrenceInput carries the raw recurrence fields from a create or edit
// form before they are validated into a domain.RecurrenceRule.
type RecurrenceInput struct {
	Frequency  domain.Frequency `json:"frequency"`
	DaysOfWeek []int            `json:"daysOfWeek,omitempty"`
	TimeOfDay  domain.TimeOfDay `json:"timeOfDay"`
}

// CompletionResult describes the outcome of completing a recurring task:
// the instance that was closed and the instance spawned for the next
// occurrence, if one was.
type CompletionResult struct {
	Completed *domain.Task `json:"completed"`
	Spawned   *domain.Task `json:"spawned,omitempty"`
}

// LifecycleService handles the reminder lifecycle: creation, completion,
// editing and deletion.
type LifecycleService interface {
	// Creation operations
	CreateImmediate(ctx context.Context, text string) (*domain.Task, error)
	CreateScheduled(ctx context.Context, text string, at time.Time) (*domain.Task, error)
	CreateRecurring(ctx context.Context, text string, input RecurrenceInput, startDate time.Time) (*domain.Task, error)

	// Read operations
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	NextTask(ctx context.Context) (*domain.Task, error)
	Stats(ctx context.Context) (domain.Stats, error)

	// Mutation operations
	ToggleComplete(ctx context.Context, id string) (*CompletionResult, error)
	UpdateRecurring(ctx context.Context, id string, text string, input RecurrenceInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// SchedulerService runs periodic background jobs, such as the sync loop.
type SchedulerService interface {
	ScheduleInterval(interval time.Duration, job func()) error
	Start()
	Stop()
}
