package timer

import (
	"sync"
	"time"
)

// Clock is the wall-clock time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Scheduler delivers the periodic signal that drives Tick. Start replaces any
// pending schedule; Stop cancels it. Neither may block on the tick function.
type Scheduler interface {
	Start(tick func())
	Stop()
}

// TickerScheduler calls the tick function from a goroutine on every period.
type TickerScheduler struct {
	stop   chan struct{}
	period time.Duration
	mu     sync.Mutex
}

// NewTickerScheduler returns a scheduler with the given period (1s if the
// period is not positive).
func NewTickerScheduler(period time.Duration) *TickerScheduler {
	if period <= 0 {
		period = time.Second
	}

	return &TickerScheduler{
		period: period,
	}
}

func (s *TickerScheduler) Start(tick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	stop := make(chan struct{})
	s.stop = stop

	go func() {
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
}

func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

func (s *TickerScheduler) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// Running reports whether a schedule is pending.
func (s *TickerScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stop != nil
}
