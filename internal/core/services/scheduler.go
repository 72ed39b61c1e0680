package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/dkazlouski/currency_exchange_app/internal/core/ports/services"
)

// syncRunTimeout bounds one scheduled fetch-and-upsert cycle.
const syncRunTimeout = 2 * time.Minute

// DailyRatesScheduler drives the rate sync once per day at a fixed UTC
// wall-clock time. Time-of-day scheduling (rather than a fixed interval) keeps
// the schedule drift-free across process restarts: a restart simply recomputes
// the next run relative to now.
type DailyRatesScheduler struct {
	syncSvc portssvc.RateSyncSvcFacade
	hour    int
	minute  int
	now     func() time.Time
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// SchedulerOption customizes a DailyRatesScheduler.
type SchedulerOption func(*DailyRatesScheduler)

// WithClock injects the time source. Used by tests to pin "now".
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *DailyRatesScheduler) {
		s.now = now
	}
}

// NewDailyRatesScheduler creates a scheduler that runs syncSvc daily at
// hour:minute UTC.
func NewDailyRatesScheduler(syncSvc portssvc.RateSyncSvcFacade, hour, minute int, logger *slog.Logger, opts ...SchedulerOption) *DailyRatesScheduler {
	s := &DailyRatesScheduler{
		syncSvc: syncSvc,
		hour:    hour,
		minute:  minute,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextRunAfter returns the next scheduled run instant strictly after now:
// today at the configured time if that is still in the future, else tomorrow.
func (s *DailyRatesScheduler) NextRunAfter(now time.Time) time.Time {
	now = now.UTC()
	todayRun := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, time.UTC)
	if now.Before(todayRun) {
		return todayRun
	}
	return todayRun.Add(24 * time.Hour)
}

// Start launches the recurring loop. Calling Start on a running scheduler is a
// no-op; no duplicate loops are created.
func (s *DailyRatesScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.loop(s.stopCh, s.doneCh)
}

// Stop signals cancellation and blocks until the loop has exited. A sync run
// already in progress completes first; the stop signal is only observed between
// runs. Stopping a scheduler that was never started is a safe no-op. The join
// happens under the mutex so a concurrent Start cannot launch a second loop
// while the old one is still draining.
func (s *DailyRatesScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
	<-s.doneCh
}

func (s *DailyRatesScheduler) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	for {
		now := s.now()
		next := s.NextRunAfter(now)
		timer := time.NewTimer(next.Sub(now))
		s.logger.Info("Next daily rates sync scheduled", slog.Time("run_at", next))

		select {
		case <-stopCh:
			timer.Stop()
			s.logger.Info("Daily rates scheduler stopped")
			return
		case <-timer.C:
		}

		s.runOnce()
	}
}

// runOnce executes one scheduled sync. Errors are logged and swallowed: a
// single failed day must not disable future runs.
func (s *DailyRatesScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), syncRunTimeout)
	defer cancel()

	now := s.now()
	runDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	count, err := s.syncSvc.SyncForDate(ctx, &runDate)
	if err != nil {
		s.logger.Error("Scheduled rates sync failed",
			slog.Time("run_date", runDate),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Info("Scheduled rates sync completed",
		slog.Time("run_date", runDate),
		slog.Int64("rows_affected", count),
	)
}
