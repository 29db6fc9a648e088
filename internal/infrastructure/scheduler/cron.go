package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"stocknews/internal/ports"
	"stocknews/pkg/logger"
)

// CronScheduler drives the aggregation cycle on a cron expression
// evaluated in a fixed timezone.
type CronScheduler struct {
	cron *cron.Cron
	spec string
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// New builds a scheduler that fires expr in loc.
func New(expr string, loc *time.Location) *CronScheduler {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.PrintfLogger(logger.New("cron"))),
	)
	return &CronScheduler{cron: c, spec: expr}
}

// Start registers job and begins firing it on schedule. The job receives
// the scheduled fire time in the scheduler's timezone.
func (s *CronScheduler) Start(ctx context.Context, job func(now time.Time)) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		job(time.Now().In(s.cron.Location()))
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.spec, err)
	}
	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	return nil
}

// Stop halts scheduling and waits for a running job to finish, or for ctx.
func (s *CronScheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
