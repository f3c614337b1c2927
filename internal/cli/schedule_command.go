package cli

import (
	"context"
	"fmt"
	"strings"

	"remindik/internal/errors"
	"remindik/internal/schedule"
	"remindik/internal/services"
)

// ScheduleCommand handles the schedule command
type ScheduleCommand struct {
	service      services.LifecycleService
	clock        schedule.Clock
	errorHandler *ErrorHandler
}

// NewScheduleCommand creates a new schedule command handler
func NewScheduleCommand(app *App) *ScheduleCommand {
	return &ScheduleCommand{
		service:      app.service,
		clock:        app.clock,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the schedule command. The last argument is the due datetime,
// everything before it is the reminder text.
func (c *ScheduleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewValidationError("usage: remindik schedule \"your reminder text\" \"2006-01-02 15:04\"", nil)
	}

	text := strings.Join(args[:len(args)-1], " ")
	at, err := parseWhen(args[len(args)-1], c.clock.Now())
	if err != nil {
		return errors.NewValidationError(err.Error(), err)
	}

	task, err := c.service.CreateScheduled(ctx, text, at)
	if err != nil {
		return c.errorHandler.Handle("schedule reminder", err)
	}

	fmt.Printf("Scheduled reminder: %s for %s (%s)\n", task.Text, at.Format("Mon Jan 2 15:04"), shortID(task.ID))
	return nil
}
