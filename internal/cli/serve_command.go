package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"remindik/internal/server"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the sync server until interrupted
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := server.Config{
		Addr:         c.app.config.GetServerAddr(),
		StaticDir:    c.app.config.Server.StaticDir,
		ReadTimeout:  c.app.config.Server.ReadTimeout,
		WriteTimeout: c.app.config.Server.WriteTimeout,
	}

	srv := server.New(cfg, c.app.repo, c.app.clock, c.app.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Printf("Sync server listening on %s\n", cfg.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return c.errorHandler.Handle("run sync server", err)
	case <-sigCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.app.config.Server.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return c.errorHandler.Handle("stop sync server", err)
	}

	fmt.Println("Sync server stopped")
	return nil
}
