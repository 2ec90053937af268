package cycle

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler holds the repeating ticker that paces the rotation and the
// one-shot timer that triggers the next scan.
type Scheduler struct {
	clock  clockwork.Clock
	repeat clockwork.Ticker
	once   clockwork.Timer
}

// NewScheduler returns a Scheduler with nothing armed. A nil clock means the
// wall clock.
func NewScheduler(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{clock: clock}
}

// Repeat arms the repeating ticker with period d, replacing any previous one.
func (s *Scheduler) Repeat(d time.Duration) {
	s.ClearRepeat()
	s.repeat = s.clock.NewTicker(d)
}

// Once arms the one-shot timer, replacing any previous one.
func (s *Scheduler) Once(d time.Duration) {
	s.ClearOnce()
	s.once = s.clock.NewTimer(d)
}

// ClearRepeat stops the repeating ticker.
func (s *Scheduler) ClearRepeat() {
	if s.repeat != nil {
		s.repeat.Stop()
		s.repeat = nil
	}
}

// ClearOnce stops the one-shot timer. It must also be called after a value
// was received from Fired.
func (s *Scheduler) ClearOnce() {
	if s.once != nil {
		s.once.Stop()
		s.once = nil
	}
}

// Stop clears both timers.
func (s *Scheduler) Stop() {
	s.ClearRepeat()
	s.ClearOnce()
}

// Ticks returns the channel of the repeating ticker. It is nil while the
// ticker is not armed, so a select on it blocks.
func (s *Scheduler) Ticks() <-chan time.Time {
	if s.repeat == nil {
		return nil
	}
	return s.repeat.Chan()
}

// Fired returns the channel of the one-shot timer, nil while not armed.
func (s *Scheduler) Fired() <-chan time.Time {
	if s.once == nil {
		return nil
	}
	return s.once.Chan()
}

// Armed reports which timers are armed.
func (s *Scheduler) Armed() (repeat, once bool) {
	return s.repeat != nil, s.once != nil
}
