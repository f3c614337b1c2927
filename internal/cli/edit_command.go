package cli

import (
	"context"
	"fmt"
	"strings"

	"remindik/internal/domain"
	"remindik/internal/errors"
	"remindik/internal/services"
)

// EditCommand handles the edit command for recurring reminders
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the edit command. Arguments after the id replace the
// reminder text; omitted flags keep the current rule fields.
func (c *EditCommand) Execute(ctx context.Context, args []string, opts RecurringOptions) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: remindik edit <id> [new text] [--every daily] [--at 09:00] [--on mon,wed]", nil)
	}

	task, err := c.app.resolveTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if task.Recurrence == nil {
		return errors.NewStateError("only recurring reminders can be edited")
	}

	text := task.Text
	if len(args) > 1 {
		text = strings.Join(args[1:], " ")
	}

	input, err := mergeRecurrenceInput(*task.Recurrence, opts)
	if err != nil {
		return err
	}

	updated, err := c.app.service.UpdateRecurring(ctx, task.ID, text, input)
	if err != nil {
		return c.errorHandler.Handle("edit reminder", err)
	}

	fmt.Printf("Updated reminder: %s, %s\n", updated.Text, updated.Recurrence.String())
	if updated.NextDue != nil {
		fmt.Printf("Next due: %s\n", updated.NextDue.Format("Mon Jan 2 15:04"))
	}
	return nil
}

// mergeRecurrenceInput overlays the flags that were set onto the current
// rule, so an edit only has to name what changes.
func mergeRecurrenceInput(current domain.RecurrenceRule, opts RecurringOptions) (services.RecurrenceInput, error) {
	input := services.RecurrenceInput{
		Frequency:  current.Frequency,
		DaysOfWeek: current.DaysOfWeek,
		TimeOfDay:  current.TimeOfDay,
	}

	if opts.Frequency != "" {
		input.Frequency = domain.Frequency(strings.ToLower(opts.Frequency))
	}
	if opts.TimeOfDay != "" {
		tod, err := domain.ParseTimeOfDay(opts.TimeOfDay)
		if err != nil {
			return input, errors.NewValidationError(err.Error(), err)
		}
		input.TimeOfDay = tod
	}
	if opts.Days != "" {
		days, err := parseDays(opts.Days)
		if err != nil {
			return input, errors.NewValidationError(err.Error(), err)
		}
		input.DaysOfWeek = days
	}

	// A switch away from weekly drops the day list
	if input.Frequency != domain.FrequencyWeekly {
		if opts.Frequency != "" && opts.Days == "" {
			input.DaysOfWeek = nil
		}
	}
	return input, nil
}
