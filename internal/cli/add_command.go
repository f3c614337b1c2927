package cli

import (
	"context"
	"fmt"
	"strings"

	"remindik/internal/errors"
	"remindik/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	service      services.LifecycleService
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: remindik add \"your reminder text\"", nil)
	}
	text := strings.Join(args, " ")

	task, err := c.service.CreateImmediate(ctx, text)
	if err != nil {
		return c.errorHandler.Handle("add reminder", err)
	}

	fmt.Printf("Added reminder: %s (%s)\n", task.Text, shortID(task.ID))
	return nil
}
