package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"remindik/internal/config"
)

// AppFactory builds the application once the final configuration is known.
// The root command applies flag overrides before calling it, so the
// database path can still be changed from the command line.
type AppFactory func(cfg *config.Config) (*App, func(), error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory AppFactory
	app     *App
	cleanup func()
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, factory AppFactory) *RootCommand {
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "remindik",
		Short: "A personal reminder manager with recurring schedules",
		Long: `Remindik is a command-line reminder manager built around due dates.

FEATURES:
  • Plain, scheduled and recurring reminders (daily, weekly, monthly)
  • A single "next up" reminder picked by due date
  • Full-screen countdown viewer with urgency colors
  • Sync server and client for sharing reminders between machines
  • Fully configurable via a TOML file, environment variables and flags

EXAMPLES:
  remindik add "Buy milk"                            # Plain reminder, no due date
  remindik schedule "Dentist" "2026-09-14 10:30"     # One-time reminder
  remindik recurring "Standup" --every weekly --at 09:30 --on mon,wed,fri
  remindik list                                      # List pending reminders
  remindik next                                      # Show the next due reminder
  remindik done 3f2a                                 # Complete by id prefix
  remindik viewer                                    # Full-screen countdown
  remindik serve                                     # Run the sync server
  remindik sync --watch                              # Keep syncing in the background

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file lives at <db-dir>/config.toml and is created on first run.

  Database Configuration:
    RK_DB_DIR                              Database directory (default: ~/.remindik)
    RK_DB_FILENAME                         Database filename (default: remindik.db)

  Server Configuration:
    RK_SERVER_HOST                         Sync server bind host (default: 0.0.0.0)
    RK_SERVER_PORT                         Sync server port (default: 3000)
    RK_SERVER_STATIC_DIR                   Directory of static web files (default: none)

  Sync Configuration:
    RK_SYNC_SERVER_URL                     Sync server base URL (default: none)
    RK_SYNC_INTERVAL                       Interval for sync --watch (default: 30s)

  Viewer Configuration:
    RK_VIEWER_TICK_INTERVAL                Countdown refresh interval (default: 1s)
    RK_VIEWER_QUOTES_FILE                  Quotes file for the all-done screen

  Application Configuration:
    RK_APP_TIMEOUT                         Command timeout (default: 60s)
    RK_APP_LOG_LEVEL                       Log level: debug, info, warn, error (default: info)
    RK_DEBUG                               Force debug logging (default: off)

WEEKDAYS:
  Weekly reminders take --on with numbers or names:
    0,3 or sun,wed                         # Sunday and Wednesday

GETTING HELP:
  remindik [command] --help                # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if root.cleanup != nil {
				root.cleanup()
			}
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// initApp builds the application from the final configuration
func (r *RootCommand) initApp() error {
	if r.app != nil {
		return nil
	}
	app, cleanup, err := r.factory(r.config)
	if err != nil {
		return err
	}
	r.app = app
	r.cleanup = cleanup
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides RK_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides RK_DB_FILENAME)")

	// Server configuration
	flags.String("server-host", "", "Sync server bind host (overrides RK_SERVER_HOST)")
	flags.Int("server-port", 0, "Sync server port (overrides RK_SERVER_PORT)")
	flags.String("static-dir", "", "Static web files directory (overrides RK_SERVER_STATIC_DIR)")

	// Sync configuration
	flags.String("sync-url", "", "Sync server base URL (overrides RK_SYNC_SERVER_URL)")
	flags.Duration("sync-interval", 0, "Sync interval for --watch (overrides RK_SYNC_INTERVAL)")

	// Viewer configuration
	flags.String("quotes-file", "", "Quotes file path (overrides RK_VIEWER_QUOTES_FILE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides RK_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides RK_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides RK_APP_LOG_LEVEL)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a plain reminder",
		Long:  "Add a reminder with no due date. It stays visible until completed.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewAddCommand(r.app).Execute(ctx, args)
		},
	}

	// Schedule command
	scheduleCmd := &cobra.Command{
		Use:   "schedule [text] [datetime]",
		Short: "Add a one-time scheduled reminder",
		Long: `Add a reminder due at a specific datetime in the future.

The last argument is the due datetime. Accepted formats:
  "2006-01-02 15:04"   # Full datetime
  "15:04"              # That time today

Examples:
  remindik schedule "Dentist" "2026-09-14 10:30"
  remindik schedule "Call back" 16:45`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewScheduleCommand(r.app).Execute(ctx, args)
		},
	}

	// Recurring command
	var recurringOpts RecurringOptions
	recurringCmd := &cobra.Command{
		Use:   "recurring [text]",
		Short: "Add a recurring reminder",
		Long: `Add a reminder that repeats on a schedule.

Examples:
  remindik recurring "Water plants" --every daily --at 08:00
  remindik recurring "Standup" --every weekly --at 09:30 --on mon,wed,fri
  remindik recurring "Pay rent" --every monthly --at 12:00 --from 2026-09-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewRecurringCommand(r.app).Execute(ctx, args, recurringOpts)
		},
	}
	recurringCmd.Flags().StringVar(&recurringOpts.Frequency, "every", "", "Repeat frequency: daily, weekly or monthly")
	recurringCmd.Flags().StringVar(&recurringOpts.TimeOfDay, "at", "", "Time of day, HH:MM")
	recurringCmd.Flags().StringVar(&recurringOpts.Days, "on", "", "Weekdays for weekly reminders, e.g. mon,wed or 1,3")
	recurringCmd.Flags().StringVar(&recurringOpts.StartDate, "from", "", "Start date, 2006-01-02 (default: today)")

	// List command
	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		Long:  "List pending reminders. Use --all to include completed ones.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewListCommand(r.app).Execute(ctx, args, listOpts)
		},
	}
	listCmd.Flags().BoolVar(&listOpts.All, "all", false, "Include completed reminders")

	// Next command
	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next due reminder",
		Long:  "Show the single reminder that is due next, with its countdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewNextCommand(r.app).Execute(ctx, args)
		},
	}

	// Done command
	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Complete a reminder",
		Long: `Complete a reminder by its id or a unique id prefix.

Completing a recurring reminder schedules its next occurrence; once
completed it stays completed. Running done on a completed plain or
scheduled reminder reopens it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewDoneCommand(r.app).Execute(ctx, args)
		},
	}

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a reminder",
		Long:  "Delete a reminder by its id or a unique id prefix. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewDeleteCommand(r.app).Execute(ctx, args)
		},
	}

	// Edit command
	var editOpts RecurringOptions
	editCmd := &cobra.Command{
		Use:   "edit [id] [new text]",
		Short: "Edit a recurring reminder",
		Long: `Edit a recurring reminder's text or schedule. Only the fields you
pass change; the next due date is recomputed from the new rule.

Examples:
  remindik edit 3f2a "Water all plants"
  remindik edit 3f2a --at 07:30
  remindik edit 3f2a --every weekly --on sat,sun`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewEditCommand(r.app).Execute(ctx, args, editOpts)
		},
	}
	editCmd.Flags().StringVar(&editOpts.Frequency, "every", "", "Repeat frequency: daily, weekly or monthly")
	editCmd.Flags().StringVar(&editOpts.TimeOfDay, "at", "", "Time of day, HH:MM")
	editCmd.Flags().StringVar(&editOpts.Days, "on", "", "Weekdays for weekly reminders")

	// Viewer command
	viewerCmd := &cobra.Command{
		Use:   "viewer",
		Short: "Run the full-screen countdown viewer",
		Long: `Run a full-screen countdown for the next due reminder. The display
refreshes every second and changes color as the due time approaches.

Keys:
  d, enter   Mark the shown reminder done (within 5 minutes of its due time)
  x          Delete the shown reminder
  q, esc     Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The viewer runs until the user quits, no timeout
			return NewViewerCommand(r.app).Execute(context.Background(), args)
		},
	}

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server",
		Long: `Run the HTTP sync server other machines pull from and push to.
Serves the static web viewer as well when --static-dir is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The server runs until interrupted, no timeout
			return NewServeCommand(r.app).Execute(context.Background(), args)
		},
	}

	// Sync command
	var syncOpts SyncOptions
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync reminders with the server",
		Long: `Exchange reminders with the configured sync server. The newer side
wins: if the server changed more recently its copy replaces the local
one, otherwise the local copy is pushed.

Examples:
  remindik sync                # Sync once
  remindik sync --watch        # Keep syncing on the configured interval`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if syncOpts.Watch {
				return NewSyncCommand(r.app).Execute(context.Background(), args, syncOpts)
			}
			ctx, cancel := r.commandContext()
			defer cancel()

			return NewSyncCommand(r.app).Execute(ctx, args, syncOpts)
		},
	}
	syncCmd.Flags().BoolVar(&syncOpts.Watch, "watch", false, "Keep syncing on the configured interval")

	r.cmd.AddCommand(
		addCmd,
		scheduleCmd,
		recurringCmd,
		listCmd,
		nextCmd,
		doneCmd,
		deleteCmd,
		editCmd,
		viewerCmd,
		serveCmd,
		syncCmd,
	)
}

// commandContext returns a context bounded by the configured app timeout
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	// Database configuration
	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}

	// Server configuration
	if host, _ := flags.GetString("server-host"); host != "" {
		r.config.Server.Host = host
	}
	if port, _ := flags.GetInt("server-port"); port > 0 {
		r.config.Server.Port = port
	}
	if staticDir, _ := flags.GetString("static-dir"); staticDir != "" {
		r.config.Server.StaticDir = staticDir
	}

	// Sync configuration
	if syncURL, _ := flags.GetString("sync-url"); syncURL != "" {
		r.config.Sync.ServerURL = syncURL
	}
	if syncInterval, _ := flags.GetDuration("sync-interval"); syncInterval > 0 {
		r.config.Sync.Interval = syncInterval
	}

	// Viewer configuration
	if quotesFile, _ := flags.GetString("quotes-file"); quotesFile != "" {
		r.config.Viewer.QuotesFile = quotesFile
	}

	// Application configuration
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
		r.config.Application.LogLevel = "debug"
	}
	if logLevel, _ := flags.GetString("log-level"); logLevel != "" {
		r.config.Application.LogLevel = logLevel
	}

	if err := r.config.Validate(); err != nil {
		return err
	}
	return nil
}
