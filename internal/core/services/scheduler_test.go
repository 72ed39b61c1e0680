package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRateSync counts SyncForDate calls and signals each one on a channel so
// tests can wait for a run without sleeping.
type stubRateSync struct {
	mu       sync.Mutex
	calls    int
	lastDate *time.Time
	err      error
	ran      chan struct{}
}

func newStubRateSync(err error) *stubRateSync {
	return &stubRateSync{err: err, ran: make(chan struct{}, 8)}
}

func (s *stubRateSync) SyncForDate(ctx context.Context, ondate *time.Time) (int64, error) {
	s.mu.Lock()
	s.calls++
	s.lastDate = ondate
	s.mu.Unlock()
	s.ran <- struct{}{}
	return 0, s.err
}

func (s *stubRateSync) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// steppingClock returns the base time on its first call and base+1h on every
// later call, so the first timer fires almost immediately and the recomputed
// next run lands a day away.
func steppingClock(base time.Time) func() time.Time {
	var called atomic.Bool
	return func() time.Time {
		if called.CompareAndSwap(false, true) {
			return base
		}
		return base.Add(time.Hour)
	}
}

func TestNextRunAfter(t *testing.T) {
	sched := services.NewDailyRatesScheduler(newStubRateSync(nil), 7, 30, discardLogger())

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before today's run time schedules today",
			now:  time.Date(2025, 9, 1, 6, 0, 0, 0, time.UTC),
			want: time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC),
		},
		{
			name: "after today's run time schedules tomorrow",
			now:  time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 9, 2, 7, 30, 0, 0, time.UTC),
		},
		{
			name: "exactly at the run time schedules tomorrow",
			now:  time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC),
			want: time.Date(2025, 9, 2, 7, 30, 0, 0, time.UTC),
		},
		{
			name: "non-UTC input is normalized",
			now:  time.Date(2025, 9, 1, 6, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			want: time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sched.NextRunAfter(tc.now))
		})
	}
}

func TestScheduler_RunsAtConfiguredTime(t *testing.T) {
	syncStub := newStubRateSync(nil)
	base := time.Date(2025, 9, 1, 7, 29, 59, int(990*time.Millisecond), time.UTC)
	sched := services.NewDailyRatesScheduler(syncStub, 7, 30, discardLogger(),
		services.WithClock(steppingClock(base)))

	sched.Start()
	defer sched.Stop()

	select {
	case <-syncStub.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled sync did not run")
	}

	require.Equal(t, 1, syncStub.callCount())
	syncStub.mu.Lock()
	defer syncStub.mu.Unlock()
	require.NotNil(t, syncStub.lastDate)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *syncStub.lastDate)
}

func TestScheduler_SyncFailureDoesNotStopLoop(t *testing.T) {
	syncStub := newStubRateSync(errors.New("feed unavailable"))
	base := time.Date(2025, 9, 1, 7, 29, 59, int(990*time.Millisecond), time.UTC)
	sched := services.NewDailyRatesScheduler(syncStub, 7, 30, discardLogger(),
		services.WithClock(steppingClock(base)))

	sched.Start()

	select {
	case <-syncStub.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled sync did not run")
	}

	// The errored run must leave the loop alive and waiting; Stop still joins it.
	sched.Stop()
	assert.Equal(t, 1, syncStub.callCount())
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	syncStub := newStubRateSync(nil)
	// Far from the run time so no sync fires during the test.
	clock := func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }
	sched := services.NewDailyRatesScheduler(syncStub, 7, 30, discardLogger(), services.WithClock(clock))

	sched.Start()
	sched.Start()
	sched.Stop()

	assert.Equal(t, 0, syncStub.callCount())
}

func TestScheduler_StopWithoutStartIsNoop(t *testing.T) {
	sched := services.NewDailyRatesScheduler(newStubRateSync(nil), 7, 30, discardLogger())
	assert.NotPanics(t, func() { sched.Stop() })
}

func TestScheduler_ConcurrentStartStop(t *testing.T) {
	syncStub := newStubRateSync(nil)
	clock := func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }
	sched := services.NewDailyRatesScheduler(syncStub, 7, 30, discardLogger(), services.WithClock(clock))

	// Interleaved Start/Stop pairs must never leave two loops running or panic
	// on a reused stop channel.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sched.Start()
		}()
		go func() {
			defer wg.Done()
			sched.Stop()
		}()
	}
	wg.Wait()
	sched.Stop()

	assert.Equal(t, 0, syncStub.callCount())
}

func TestScheduler_Restart(t *testing.T) {
	syncStub := newStubRateSync(nil)
	clock := func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }
	sched := services.NewDailyRatesScheduler(syncStub, 7, 30, discardLogger(), services.WithClock(clock))

	sched.Start()
	sched.Stop()
	sched.Start()
	sched.Stop()

	assert.Equal(t, 0, syncStub.callCount())
}
