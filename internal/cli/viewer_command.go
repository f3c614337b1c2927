package cli

import (
	"context"

	"remindik/internal/viewer"
)

// ViewerCommand handles the viewer command
type ViewerCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewViewerCommand creates a new viewer command handler
func NewViewerCommand(app *App) *ViewerCommand {
	return &ViewerCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the full-screen countdown viewer
func (c *ViewerCommand) Execute(ctx context.Context, args []string) error {
	quotes := viewer.LoadQuotes(c.app.config.Viewer.QuotesFile)

	err := viewer.Run(c.app.service, c.app.clock, quotes, c.app.config.Viewer.TickInterval)
	if err != nil {
		return c.errorHandler.Handle("run viewer", err)
	}
	return nil
}
