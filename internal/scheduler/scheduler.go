package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/config"
	"github.com/mamadbah2/juiceshop/internal/domain/models"
)

const runTimeout = 2 * time.Minute

// ErrAlreadyStarted is returned by Start when the timer is already armed.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Reporter produces and sends the owner's daily summary.
type Reporter interface {
	SendDailySummary(ctx context.Context) (models.NotificationLogEntry, error)
}

// Clock abstracts time so the timer can be driven in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Scheduler fires the daily summary on a cron schedule evaluated in the
// shop's timezone. Missed firings are not replayed.
type Scheduler struct {
	schedule cron.Schedule
	location *time.Location
	reporter Reporter
	clock    Clock
	logger   *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	lastFire time.Time
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	schedule, err := cron.ParseStandard(cfg.CronSchedule)
	if err != nil {
		return nil, fmt.Errorf("parse report schedule: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load report timezone: %w", err)
	}

	return &Scheduler{
		schedule: schedule,
		location: loc,
		reporter: reporter,
		clock:    realClock{},
		logger:   logger,
	}, nil
}

// Start arms the timer. It returns ErrAlreadyStarted if called again before Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("starting scheduler", zap.String("location", s.location.String()))
	go s.loop(runCtx, s.done)
	return nil
}

// Stop disarms the timer and waits for an in-flight summary to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	s.logger.Info("stopping scheduler")
	cancel()
	<-done
}

// Next returns the first firing strictly after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		now := s.clock.Now().In(s.location)
		from := now
		if from.Before(s.lastFire) {
			from = s.lastFire
		}
		next := s.Next(from)
		s.logger.Debug("daily summary armed", zap.Time("at", next))

		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(next.Sub(now)):
		}

		s.lastFire = next
		s.sendDailySummary(ctx)
	}
}

func (s *Scheduler) sendDailySummary(ctx context.Context) {
	s.logger.Info("generating daily summary")
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	if _, err := s.reporter.SendDailySummary(ctx); err != nil {
		s.logger.Error("failed to send daily summary", zap.Error(err))
		return
	}
	s.logger.Info("daily summary sent successfully")
}
