package cli

import (
	"context"
	"fmt"
	"strings"

	"remindik/internal/domain"
	"remindik/internal/errors"
	"remindik/internal/schedule"
	"remindik/internal/services"
)

// RecurringOptions carries the recurrence flags for the recurring command
type RecurringOptions struct {
	Frequency string
	TimeOfDay string
	Days      string
	StartDate string
}

// RecurringCommand handles the recurring command
type RecurringCommand struct {
	service      services.LifecycleService
	clock        schedule.Clock
	errorHandler *ErrorHandler
}

// NewRecurringCommand creates a new recurring command handler
func NewRecurringCommand(app *App) *RecurringCommand {
	return &RecurringCommand{
		service:      app.service,
		clock:        app.clock,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the recurring command
func (c *RecurringCommand) Execute(ctx context.Context, args []string, opts RecurringOptions) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: remindik recurring \"your reminder text\" --every daily --at 09:00", nil)
	}
	text := strings.Join(args, " ")

	input, err := buildRecurrenceInput(opts)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	startDate := now
	if opts.StartDate != "" {
		startDate, err = parseDate(opts.StartDate, now.Location())
		if err != nil {
			return errors.NewValidationError(err.Error(), err)
		}
	}

	task, err := c.service.CreateRecurring(ctx, text, input, startDate)
	if err != nil {
		return c.errorHandler.Handle("add recurring reminder", err)
	}

	fmt.Printf("Added recurring reminder: %s, %s (%s)\n", task.Text, task.Recurrence.String(), shortID(task.ID))
	if task.NextDue != nil {
		fmt.Printf("First due: %s\n", task.NextDue.Format("Mon Jan 2 15:04"))
	}
	return nil
}

// buildRecurrenceInput converts raw flag values into a RecurrenceInput,
// leaving full rule validation to the service layer.
func buildRecurrenceInput(opts RecurringOptions) (services.RecurrenceInput, error) {
	var input services.RecurrenceInput

	if opts.Frequency == "" {
		return input, errors.NewValidationError("--every is required (daily, weekly or monthly)", nil)
	}
	if opts.TimeOfDay == "" {
		return input, errors.NewValidationError("--at is required (HH:MM)", nil)
	}

	tod, err := domain.ParseTimeOfDay(opts.TimeOfDay)
	if err != nil {
		return input, errors.NewValidationError(err.Error(), err)
	}

	days, err := parseDays(opts.Days)
	if err != nil {
		return input, errors.NewValidationError(err.Error(), err)
	}

	input.Frequency = domain.Frequency(strings.ToLower(opts.Frequency))
	input.TimeOfDay = tod
	input.DaysOfWeek = days
	return input, nil
}
