package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"remindik/internal/config"
	"remindik/internal/domain"
	"remindik/internal/errors"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
	"remindik/internal/schedule"
	"remindik/internal/services"
)

// App bundles the dependencies every command handler needs
type App struct {
	service services.LifecycleService
	repo    sqlite.Repository
	config  *config.Config
	clock   schedule.Clock
	logger  logging.Logger
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(repo sqlite.Repository, cfg *config.Config, clock schedule.Clock, logger logging.Logger) *App {
	return &App{
		service: services.NewLifecycleServiceWithLimits(repo, clock, logger, cfg.Validation.TextMinLength, cfg.Validation.TextMaxLength),
		repo:    repo,
		config:  cfg,
		clock:   clock,
		logger:  logger,
	}
}

// shortID returns the first eight characters of a reminder ID, enough to
// address it from the command line.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTask looks up a reminder by full ID or by a unique ID prefix.
func (a *App) resolveTask(ctx context.Context, idOrPrefix string) (*domain.Task, error) {
	if idOrPrefix == "" {
		return nil, errors.NewValidationError("reminder id is required", nil)
	}

	tasks, err := a.service.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Task
	for i := range tasks {
		if tasks[i].ID == idOrPrefix {
			return &tasks[i], nil
		}
		if strings.HasPrefix(tasks[i].ID, idOrPrefix) {
			matches = append(matches, &tasks[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("reminder", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("id prefix %q matches %d reminders, use more characters", idOrPrefix, len(matches)), nil)
	}
}

// whenLayouts are the accepted datetime formats for scheduled reminders,
// tried in order. Bare times like "15:04" resolve to today.
var whenLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// parseWhen parses a datetime argument in local time. A bare "HH:MM" is
// interpreted as that time today, relative to the supplied instant.
func parseWhen(arg string, now time.Time) (time.Time, error) {
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, arg, now.Location()); err == nil {
			return t, nil
		}
	}
	if tod, err := domain.ParseTimeOfDay(arg); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q (expected \"2006-01-02 15:04\" or \"15:04\")", arg)
}

// parseDate parses a "2006-01-02" start date at midnight local time.
func parseDate(arg string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", arg, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected \"2006-01-02\")", arg)
	}
	return t, nil
}

// dayNames maps three-letter weekday names to their numeric value.
var dayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// parseDays parses a comma-separated list of weekdays. Entries may be
// numbers (0=Sunday through 6=Saturday) or three-letter names.
func parseDays(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	var days []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if day, ok := dayNames[part]; ok {
			days = append(days, day)
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q (expected 0-6 or sun..sat)", part)
		}
		days = append(days, day)
	}
	sort.Ints(days)
	return days, nil
}
