package cli

import (
	"context"
	"fmt"

	"remindik/internal/schedule"
	"remindik/internal/services"
	"remindik/internal/viewer"
)

// NextCommand handles the next command
type NextCommand struct {
	service      services.LifecycleService
	clock        schedule.Clock
	errorHandler *ErrorHandler
}

// NewNextCommand creates a new next command handler
func NewNextCommand(app *App) *NextCommand {
	return &NextCommand{
		service:      app.service,
		clock:        app.clock,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the next command
func (c *NextCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.service.NextTask(ctx)
	if err != nil {
		return c.errorHandler.Handle("find next reminder", err)
	}

	if task == nil {
		stats, err := c.service.Stats(ctx)
		if err != nil {
			return c.errorHandler.Handle("find next reminder", err)
		}
		fmt.Printf("All done, %d of %d reminders completed\n", stats.Completed, stats.Total)
		return nil
	}

	fmt.Println(formatTaskLine(*task))
	if due := task.DueAt(); due != nil {
		remaining := due.Sub(c.clock.Now())
		fmt.Printf("Countdown: %s\n", viewer.FormatCountdown(remaining))
	}
	return nil
}
