package cli

import (
	"context"
	"fmt"

	"remindik/internal/domain"
	"remindik/internal/services"
)

// ListOptions carries the display flags for the list command
type ListOptions struct {
	All bool
}

// ListCommand handles the list command
type ListCommand struct {
	service      services.LifecycleService
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command. Completed reminders are hidden unless
// --all is given.
func (c *ListCommand) Execute(ctx context.Context, args []string, opts ListOptions) error {
	tasks, err := c.service.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list reminders", err)
	}

	var shown int
	for i := range tasks {
		if tasks[i].Completed && !opts.All {
			continue
		}
		fmt.Println(formatTaskLine(tasks[i]))
		shown++
	}

	if shown == 0 {
		fmt.Println("No reminders found")
	}

	stats, err := c.service.Stats(ctx)
	if err != nil {
		return c.errorHandler.Handle("list reminders", err)
	}
	fmt.Printf("%d total, %d pending, %d completed\n", stats.Total, stats.Pending, stats.Completed)
	return nil
}

// formatTaskLine renders one reminder as a single line:
// id  [status]  text  (due / recurrence)
func formatTaskLine(task domain.Task) string {
	status := " "
	if task.Completed {
		status = "x"
	}

	line := fmt.Sprintf("%s  [%s]  %s", shortID(task.ID), status, task.Text)

	switch task.Kind {
	case domain.KindScheduled:
		if task.ScheduledFor != nil {
			line += fmt.Sprintf("  (due %s)", task.ScheduledFor.Format("Mon Jan 2 15:04"))
		}
	case domain.KindRecurring:
		if task.Recurrence != nil {
			line += fmt.Sprintf("  (%s", task.Recurrence.String())
			if task.NextDue != nil {
				line += fmt.Sprintf(", next %s", task.NextDue.Format("Mon Jan 2 15:04"))
			}
			line += ")"
		}
	}
	return line
}
