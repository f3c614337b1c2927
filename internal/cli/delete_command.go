package cli

import (
	"context"
	"fmt"

	"remindik/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: remindik delete <id>", nil)
	}

	task, err := c.app.resolveTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.service.DeleteTask(ctx, task.ID); err != nil {
		return c.errorHandler.Handle("delete reminder", err)
	}

	fmt.Printf("Deleted reminder: %s\n", task.Text)
	return nil
}
