package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindik/internal/domain"
	"remindik/internal/errors"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
	"remindik/internal/schedule"
)

// Tuesday, June 10 2025, noon UTC
var testNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func setupLifecycleService(t *testing.T) (LifecycleService, *sqlite.SQLiteRepository) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	service := NewLifecycleService(repo, schedule.FixedClock{Instant: testNow}, logging.NewNopLogger())
	return service, repo
}

func dailyAt(hour, minute int) RecurrenceInput {
	return RecurrenceInput{
		Frequency: domain.FrequencyDaily,
		TimeOfDay: domain.TimeOfDay{Hour: hour, Minute: minute},
	}
}

func weeklyAt(days []int, hour, minute int) RecurrenceInput {
	return RecurrenceInput{
		Frequency:  domain.FrequencyWeekly,
		DaysOfWeek: days,
		TimeOfDay:  domain.TimeOfDay{Hour: hour, Minute: minute},
	}
}

func TestLifecycleService_CreateImmediate(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantText       string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:     "should create task with valid text",
			text:     "Water the plants",
			wantText: "Water the plants",
		},
		{
			name:     "should trim surrounding whitespace",
			text:     "  Buy milk  ",
			wantText: "Buy milk",
		},
		{
			name: "should return validation error for empty text",
			text: "",
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "text")
			},
		},
		{
			name: "should return validation error for very long text",
			text: strings.Repeat("x", 300),
			errorAssertion: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "text")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupLifecycleService(t)

			result, err := service.CreateImmediate(context.Background(), tt.text)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, tt.wantText, result.Text)
				assert.Equal(t, domain.KindImmediate, result.Kind)
				assert.True(t, testNow.Equal(result.CreatedAt))
			}
		})
	}
}

func TestLifecycleService_ConfiguredTextLimits(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	service := NewLifecycleServiceWithLimits(repo, schedule.FixedClock{Instant: testNow}, logging.NewNopLogger(), 3, 10)
	ctx := context.Background()

	_, err = service.CreateImmediate(ctx, "Gym")
	assert.NoError(t, err)

	_, err = service.CreateImmediate(ctx, "Go")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	_, err = service.CreateImmediate(ctx, strings.Repeat("x", 11))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestLifecycleService_CreateScheduled(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	at := testNow.Add(48 * time.Hour)
	result, err := service.CreateScheduled(ctx, "Dentist", at)
	require.NoError(t, err)
	assert.Equal(t, domain.KindScheduled, result.Kind)
	require.NotNil(t, result.ScheduledFor)
	assert.True(t, at.Equal(*result.ScheduledFor))

	// Past instants are rejected.
	_, err = service.CreateScheduled(ctx, "Too late", testNow.Add(-time.Hour))
	assert.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	// The current instant is not in the future.
	_, err = service.CreateScheduled(ctx, "Right now", testNow)
	assert.Error(t, err)
}

func TestLifecycleService_CreateRecurring(t *testing.T) {
	tests := []struct {
		name        string
		input       RecurrenceInput
		startDate   time.Time
		wantNextDue time.Time
		wantErr     bool
	}{
		{
			name:        "daily rule due later today",
			input:       dailyAt(15, 0),
			startDate:   testNow,
			wantNextDue: time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC),
		},
		{
			name:        "daily rule already past rolls to tomorrow",
			input:       dailyAt(9, 0),
			startDate:   testNow,
			wantNextDue: time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name:        "weekly rule lands on next matching weekday",
			input:       weeklyAt([]int{3}, 9, 30),
			startDate:   testNow,
			wantNextDue: time.Date(2025, time.June, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "past start date rejected",
			input:     dailyAt(9, 0),
			startDate: testNow.AddDate(0, 0, -7),
			wantErr:   true,
		},
		{
			name: "weekly rule without days rejected",
			input: RecurrenceInput{
				Frequency: domain.FrequencyWeekly,
				TimeOfDay: domain.TimeOfDay{Hour: 9},
			},
			startDate: testNow,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := setupLifecycleService(t)

			result, err := service.CreateRecurring(context.Background(), "Gym", tt.input, tt.startDate)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.KindRecurring, result.Kind)
			require.NotNil(t, result.NextDue)
			assert.True(t, tt.wantNextDue.Equal(*result.NextDue), "got %v", *result.NextDue)
		})
	}
}

func TestLifecycleService_ToggleComplete(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	task, err := service.CreateImmediate(ctx, "One-off")
	require.NoError(t, err)

	result, err := service.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed.Completed)
	require.NotNil(t, result.Completed.CompletedAt)
	assert.True(t, testNow.Equal(*result.Completed.CompletedAt))
	assert.Nil(t, result.Spawned)

	// Toggling again reopens.
	result, err = service.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, result.Completed.Completed)
	assert.Nil(t, result.Completed.CompletedAt)
}

func TestLifecycleService_ToggleComplete_RecurringSpawnsNext(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	task, err := service.CreateRecurring(ctx, "Gym", dailyAt(9, 0), testNow)
	require.NoError(t, err)

	result, err := service.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed.Completed)
	require.NotNil(t, result.Spawned)

	spawned := result.Spawned
	assert.NotEqual(t, task.ID, spawned.ID)
	assert.Equal(t, "Gym", spawned.Text)
	assert.False(t, spawned.Completed)
	require.NotNil(t, spawned.NextDue)
	// Daily rule always lands on tomorrow at the rule time.
	assert.True(t, time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC).Equal(*spawned.NextDue))

	tasks, err := service.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestLifecycleService_ToggleComplete_CompletedRecurringStaysCompleted(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	task, err := service.CreateRecurring(ctx, "Gym", dailyAt(9, 0), testNow)
	require.NoError(t, err)

	_, err = service.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)

	// A second completion signal for the same occurrence must not reopen
	// the historical row or spawn again.
	_, err = service.ToggleComplete(ctx, task.ID)
	assert.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))

	original, err := service.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, original.Completed)

	tasks, err := service.ListTasks(ctx)
	require.NoError(t, err)
	var active int
	for _, task := range tasks {
		if !task.Completed {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestLifecycleService_ToggleComplete_SkipsSpawnWhenDuplicateActive(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	first, err := service.CreateRecurring(ctx, "Gym", weeklyAt([]int{1, 3}, 9, 0), testNow)
	require.NoError(t, err)
	// Same text, same rule with days in a different order.
	_, err = service.CreateRecurring(ctx, "Gym", weeklyAt([]int{3, 1}, 9, 0), testNow)
	require.NoError(t, err)

	result, err := service.ToggleComplete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, result.Completed.Completed)
	assert.Nil(t, result.Spawned)

	tasks, err := service.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestLifecycleService_ToggleComplete_NotFound(t *testing.T) {
	service, _ := setupLifecycleService(t)

	_, err := service.ToggleComplete(context.Background(), "no-such-id")
	assert.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestLifecycleService_UpdateRecurring(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	task, err := service.CreateRecurring(ctx, "Gym", dailyAt(9, 0), testNow)
	require.NoError(t, err)

	updated, err := service.UpdateRecurring(ctx, task.ID, "Swim", weeklyAt([]int{4}, 18, 0))
	require.NoError(t, err)
	assert.Equal(t, "Swim", updated.Text)
	assert.Equal(t, domain.FrequencyWeekly, updated.Recurrence.Frequency)
	require.NotNil(t, updated.NextDue)
	// Next Thursday after Tuesday noon.
	assert.True(t, time.Date(2025, time.June, 12, 18, 0, 0, 0, time.UTC).Equal(*updated.NextDue))

	// An edit to a slot later the same day keeps today's occurrence.
	updated, err = service.UpdateRecurring(ctx, task.ID, "Swim", dailyAt(18, 0))
	require.NoError(t, err)
	require.NotNil(t, updated.NextDue)
	assert.True(t, time.Date(2025, time.June, 10, 18, 0, 0, 0, time.UTC).Equal(*updated.NextDue))
}

func TestLifecycleService_UpdateRecurring_RejectsWrongKindAndState(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	immediate, err := service.CreateImmediate(ctx, "One-off")
	require.NoError(t, err)

	_, err = service.UpdateRecurring(ctx, immediate.ID, "Changed", dailyAt(9, 0))
	assert.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))

	recurring, err := service.CreateRecurring(ctx, "Gym", dailyAt(9, 0), testNow)
	require.NoError(t, err)
	_, err = service.ToggleComplete(ctx, recurring.ID)
	require.NoError(t, err)

	_, err = service.UpdateRecurring(ctx, recurring.ID, "Changed", dailyAt(10, 0))
	assert.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))
}

func TestLifecycleService_DeleteTask(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	task, err := service.CreateImmediate(ctx, "Disposable")
	require.NoError(t, err)

	require.NoError(t, service.DeleteTask(ctx, task.ID))

	_, err = service.GetTask(ctx, task.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = service.DeleteTask(ctx, task.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestLifecycleService_NextTask(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	next, err := service.NextTask(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)

	// A scheduled task in the future is not eligible, the immediate one is.
	_, err = service.CreateScheduled(ctx, "Later", testNow.Add(24*time.Hour))
	require.NoError(t, err)
	immediate, err := service.CreateImmediate(ctx, "Now")
	require.NoError(t, err)

	next, err = service.NextTask(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, immediate.ID, next.ID)
}

func TestLifecycleService_Stats(t *testing.T) {
	service, _ := setupLifecycleService(t)
	ctx := context.Background()

	first, err := service.CreateImmediate(ctx, "One")
	require.NoError(t, err)
	_, err = service.CreateImmediate(ctx, "Two")
	require.NoError(t, err)

	_, err = service.ToggleComplete(ctx, first.ID)
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
}

func TestLifecycleService_MutationsAdvanceLastModified(t *testing.T) {
	service, repo := setupLifecycleService(t)
	ctx := context.Background()

	stamp, err := repo.GetLastModified(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stamp)

	_, err = service.CreateImmediate(ctx, "One")
	require.NoError(t, err)

	stamp, err = repo.GetLastModified(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNow.UnixMilli(), stamp)
}
