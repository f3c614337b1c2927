package services

import (
	"context"
	"sync"
	"time"

	"remindik/internal/domain"
	"remindik/internal/errors"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
	"remindik/internal/schedule"
	"remindik/internal/selector"
	"remindik/internal/validation"
)

// lifecycleServiceImpl implements the LifecycleService interface
type lifecycleServiceImpl struct {
	repo                sqlite.Repository
	clock               schedule.Clock
	logger              logging.Logger
	mapper              *domain.TaskMapper
	taskValidator       *validation.TaskValidator
	recurrenceValidator *validation.RecurrenceValidator

	// Guards against double completion of the same task. A toggle for an
	// id that is already being toggled is rejected, so a recurring task
	// spawns at most one successor per completion.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewLifecycleService creates a new LifecycleService instance with default
// text length limits
func NewLifecycleService(repo sqlite.Repository, clock schedule.Clock, logger logging.Logger) LifecycleService {
	return newLifecycleService(repo, clock, logger, validation.NewTaskValidator())
}

// NewLifecycleServiceWithLimits creates a LifecycleService whose text
// validation uses the configured length limits
func NewLifecycleServiceWithLimits(repo sqlite.Repository, clock schedule.Clock, logger logging.Logger, textMinLength, textMaxLength int) LifecycleService {
	return newLifecycleService(repo, clock, logger, validation.NewTaskValidatorWithLimits(textMinLength, textMaxLength))
}

func newLifecycleService(repo sqlite.Repository, clock schedule.Clock, logger logging.Logger, taskValidator *validation.TaskValidator) LifecycleService {
	return &lifecycleServiceImpl{
		repo:                repo,
		clock:               clock,
		logger:              logger,
		mapper:              domain.NewTaskMapper(),
		taskValidator:       taskValidator,
		recurrenceValidator: validation.NewRecurrenceValidator(),
		inFlight:            make(map[string]struct{}),
	}
}

// CreateImmediate creates a reminder with no due instant
func (s *lifecycleServiceImpl) CreateImmediate(ctx context.Context, text string) (*domain.Task, error) {
	validText, err := s.taskValidator.GetValidText(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}

	task := domain.NewImmediateTask(validText, s.clock.Now())
	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Debug("created task", "id", task.ID, "kind", task.Kind)
	return &task, nil
}

// CreateScheduled creates a one-time reminder due at the given instant
func (s *lifecycleServiceImpl) CreateScheduled(ctx context.Context, text string, at time.Time) (*domain.Task, error) {
	validText, err := s.taskValidator.GetValidText(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}

	now := s.clock.Now()
	if err := s.taskValidator.ValidateScheduledFor(at, now); err != nil {
		return nil, errors.NewValidationError("invalid scheduled instant", err)
	}

	task := domain.NewScheduledTask(validText, at, now)
	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Debug("created task", "id", task.ID, "kind", task.Kind, "scheduledFor", at)
	return &task, nil
}

// CreateRecurring creates a recurring reminder. The first due instant is
// computed from the rule, the start date and the current time.
func (s *lifecycleServiceImpl) CreateRecurring(ctx context.Context, text string, input RecurrenceInput, startDate time.Time) (*domain.Task, error) {
	validText, err := s.taskValidator.GetValidText(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}

	now := s.clock.Now()
	if err := s.recurrenceValidator.ValidateRule(input.Frequency, input.DaysOfWeek, input.TimeOfDay); err != nil {
		return nil, errors.NewValidationError("invalid recurrence rule", err)
	}
	if err := s.taskValidator.ValidateStartDate(startDate, now); err != nil {
		return nil, errors.NewValidationError("invalid start date", err)
	}

	rule, err := domain.NewRecurrenceRule(input.Frequency, input.DaysOfWeek, input.TimeOfDay)
	if err != nil {
		return nil, errors.NewValidationError("invalid recurrence rule", err)
	}

	nextDue := schedule.FirstDueDate(rule, startDate, now)
	task := domain.NewRecurringTask(validText, rule, nextDue, now)
	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Debug("created task", "id", task.ID, "kind", task.Kind, "nextDue", nextDue)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (s *lifecycleServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := s.taskValidator.ValidateID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task, err := s.mapper.FromDatabase(dbTask)
	if err != nil {
		return nil, errors.NewStorageError("map task", err)
	}
	return &task, nil
}

// ListTasks retrieves all tasks in creation order
func (s *lifecycleServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.mapper.FromDatabaseSlice(dbTasks)
	if err != nil {
		return nil, errors.NewStorageError("map tasks", err)
	}
	return tasks, nil
}

// NextTask returns the single most urgent eligible task, or nil when
// everything is done.
func (s *lifecycleServiceImpl) NextTask(ctx context.Context) (*domain.Task, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return selector.NextTask(tasks, s.clock.Now()), nil
}

// Stats returns counts over the whole task set
func (s *lifecycleServiceImpl) Stats(ctx context.Context) (domain.Stats, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	collection := domain.Collection{Tasks: tasks}
	return collection.Stats(), nil
}

// ToggleComplete flips a task's completion state. Completing a recurring
// task also spawns the next occurrence, unless an identical active task
// already exists. Only immediate and scheduled tasks can be reopened;
// a completed recurring occurrence stays completed.
func (s *lifecycleServiceImpl) ToggleComplete(ctx context.Context, id string) (*CompletionResult, error) {
	if err := s.taskValidator.ValidateID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	if !s.acquire(id) {
		return nil, errors.NewStateError("task completion already in progress")
	}
	defer s.release(id)

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	if task.Completed {
		// A completed recurring occurrence is a historical record; its
		// place in the lineage is taken by the spawned task, so a second
		// completion signal must not revive it.
		if task.Kind == domain.KindRecurring {
			return nil, errors.NewStateError("recurring occurrence is already completed")
		}
		task.Reopen()
		if err := s.saveTask(ctx, *task); err != nil {
			return nil, err
		}
		return &CompletionResult{Completed: task}, nil
	}

	if task.Kind == domain.KindRecurring {
		return s.completeRecurring(ctx, task, now)
	}

	task.Complete(now)
	if err := s.saveTask(ctx, *task); err != nil {
		return nil, err
	}
	return &CompletionResult{Completed: task}, nil
}

// completeRecurring closes the current instance and spawns the next one.
// The just-completed instance keeps its due instant for history.
func (s *lifecycleServiceImpl) completeRecurring(ctx context.Context, task *domain.Task, now time.Time) (*CompletionResult, error) {
	task.Complete(now)
	if err := s.saveTask(ctx, *task); err != nil {
		return nil, err
	}

	duplicate, err := s.hasActiveDuplicate(ctx, *task)
	if err != nil {
		return nil, err
	}
	if duplicate {
		s.logger.Debug("skipping spawn, active duplicate exists", "id", task.ID)
		return &CompletionResult{Completed: task}, nil
	}

	rule := *task.Recurrence
	nextDue := schedule.NextDueDate(rule, now)
	spawned := domain.NewRecurringTask(task.Text, rule, nextDue, now)
	if err := s.saveTask(ctx, spawned); err != nil {
		return nil, err
	}

	s.logger.Debug("spawned next occurrence", "completed", task.ID, "spawned", spawned.ID, "nextDue", nextDue)
	return &CompletionResult{Completed: task, Spawned: &spawned}, nil
}

// hasActiveDuplicate reports whether another active recurring task exists
// with the same text and an equivalent rule.
func (s *lifecycleServiceImpl) hasActiveDuplicate(ctx context.Context, task domain.Task) (bool, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return false, err
	}

	for _, other := range tasks {
		if other.ID == task.ID || other.Completed || other.Kind != domain.KindRecurring {
			continue
		}
		if other.Text == task.Text && other.Recurrence != nil && other.Recurrence.Equal(*task.Recurrence) {
			return true, nil
		}
	}
	return false, nil
}

// UpdateRecurring changes a recurring task's text and rule, recomputing its
// next due instant from the current time.
func (s *lifecycleServiceImpl) UpdateRecurring(ctx context.Context, id string, text string, input RecurrenceInput) (*domain.Task, error) {
	validText, err := s.taskValidator.GetValidText(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Kind != domain.KindRecurring {
		return nil, errors.NewStateError("only recurring tasks can be edited")
	}
	if task.Completed {
		return nil, errors.NewStateError("completed tasks cannot be edited")
	}

	if err := s.recurrenceValidator.ValidateRule(input.Frequency, input.DaysOfWeek, input.TimeOfDay); err != nil {
		return nil, errors.NewValidationError("invalid recurrence rule", err)
	}
	rule, err := domain.NewRecurrenceRule(input.Frequency, input.DaysOfWeek, input.TimeOfDay)
	if err != nil {
		return nil, errors.NewValidationError("invalid recurrence rule", err)
	}

	// Recalculated like a fresh rule starting today, so a slot later the
	// same day stays reachable.
	now := s.clock.Now()
	nextDue := schedule.FirstDueDate(rule, now, now)
	task.Text = validText
	task.Recurrence = &rule
	task.NextDue = &nextDue

	if err := s.saveTask(ctx, *task); err != nil {
		return nil, err
	}

	s.logger.Debug("updated task", "id", task.ID, "nextDue", nextDue)
	return task, nil
}

// DeleteTask deletes a task by ID
func (s *lifecycleServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskValidator.ValidateID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}
	return s.touch(ctx)
}

// saveTask persists a task and advances the last modified stamp
func (s *lifecycleServiceImpl) saveTask(ctx context.Context, task domain.Task) error {
	if err := s.repo.SaveTask(ctx, s.mapper.ToDatabase(task)); err != nil {
		return err
	}
	return s.touch(ctx)
}

func (s *lifecycleServiceImpl) touch(ctx context.Context) error {
	return s.repo.SetLastModified(ctx, s.clock.Now().UnixMilli())
}

func (s *lifecycleServiceImpl) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *lifecycleServiceImpl) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
