package cli

import (
	"context"
	"fmt"

	"remindik/internal/errors"
)

// DoneCommand handles the done command
type DoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: remindik done <id>", nil)
	}

	task, err := c.app.resolveTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	result, err := c.app.service.ToggleComplete(ctx, task.ID)
	if err != nil {
		return c.errorHandler.Handle("complete reminder", err)
	}

	if !result.Completed.Completed {
		fmt.Printf("Reopened reminder: %s\n", result.Completed.Text)
		return nil
	}

	fmt.Printf("Completed reminder: %s\n", result.Completed.Text)
	if result.Spawned != nil && result.Spawned.NextDue != nil {
		fmt.Printf("Next occurrence: %s\n", result.Spawned.NextDue.Format("Mon Jan 2 15:04"))
	}
	return nil
}
