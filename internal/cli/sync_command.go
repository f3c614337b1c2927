package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"remindik/internal/errors"
	"remindik/internal/services"
	"remindik/internal/sync"
)

// SyncOptions carries the flags for the sync command
type SyncOptions struct {
	Watch bool
}

// SyncCommand handles the sync command
type SyncCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSyncCommand creates a new sync command handler
func NewSyncCommand(app *App) *SyncCommand {
	return &SyncCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the sync command. Without --watch it performs a single
// exchange; with --watch it keeps syncing on the configured interval
// until interrupted.
func (c *SyncCommand) Execute(ctx context.Context, args []string, opts SyncOptions) error {
	serverURL := c.app.config.Sync.ServerURL
	if serverURL == "" {
		return errors.NewValidationError("no sync server configured, set RK_SYNC_SERVER_URL or sync.server_url", nil)
	}

	client := sync.NewClient(serverURL, c.app.config.Sync.RequestTimeout, c.app.repo, c.app.logger)

	if !opts.Watch {
		return c.syncOnce(ctx, client)
	}

	scheduler := services.NewSchedulerService(c.app.logger)
	err := scheduler.ScheduleInterval(c.app.config.Sync.Interval, func() {
		if err := c.syncOnce(context.Background(), client); err != nil {
			c.app.logger.Warn("sync failed", "error", err)
		}
	})
	if err != nil {
		return c.errorHandler.Handle("start sync watcher", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	fmt.Printf("Syncing with %s every %s, press ctrl+c to stop\n", serverURL, c.app.config.Sync.Interval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	return nil
}

// syncOnce performs one exchange and reports the outcome
func (c *SyncCommand) syncOnce(ctx context.Context, client *sync.Client) error {
	result, err := client.SyncOnce(ctx)
	if err != nil {
		return c.errorHandler.Handle("sync reminders", err)
	}

	switch result.Outcome {
	case sync.OutcomePulled:
		fmt.Printf("Pulled %d reminders from server (stamp %d)\n", result.TaskCount, result.LastModified)
	case sync.OutcomePushed:
		fmt.Printf("Pushed %d reminders to server (stamp %d)\n", result.TaskCount, result.LastModified)
	}
	return nil
}
