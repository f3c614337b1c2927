package main

import (
	"fmt"
	"os"

	"remindik/internal/cli"
	"remindik/internal/config"
	"remindik/internal/logging"
	"remindik/internal/schedule"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The app is built after flag parsing so --db-dir and friends can
	// still change where the database lives
	factory := func(cfg *config.Config) (*cli.App, func(), error) {
		logger := logging.NewLogger(logging.Options{Level: cfg.Application.LogLevel})

		repo, err := NewRepositoryFactory(GetEnvironment(), cfg).CreateRepository()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		app := cli.NewApp(repo, cfg, schedule.SystemClock{}, logger)
		cleanup := func() { repo.Close() }
		return app, cleanup, nil
	}

	root := cli.NewRootCommand(cfg, factory)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
