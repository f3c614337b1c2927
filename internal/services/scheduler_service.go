package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"remindik/internal/logging"
)

// schedulerServiceImpl wraps cron-based background jobs
type schedulerServiceImpl struct {
	cron   *cron.Cron
	logger logging.Logger
}

// NewSchedulerService creates a new SchedulerService instance
func NewSchedulerService(logger logging.Logger) SchedulerService {
	return &schedulerServiceImpl{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// ScheduleInterval registers a periodic job every given duration.
// Sub-second intervals are rounded up to one second.
func (s *schedulerServiceImpl) ScheduleInterval(interval time.Duration, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}

	spec := fmt.Sprintf("@every %ds", seconds)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return err
	}
	s.logger.Debug("scheduled job", "every", spec)
	return nil
}

// Start begins running scheduled jobs
func (s *schedulerServiceImpl) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish
func (s *schedulerServiceImpl) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
