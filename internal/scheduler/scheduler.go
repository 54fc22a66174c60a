// Package scheduler runs the fixed-step frame loop: simulation advances at a
// fixed rate, drawing happens once per frame and the loop sleeps off the rest.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// DefaultCatchUpCap bounds the ticks a single frame may run to catch up.
const DefaultCatchUpCap = 5

// Loop is what the scheduler drives each frame.
type Loop interface {
	// Begin routes input and handles control events. Returning false stops
	// the loop before anything is drawn.
	Begin() bool
	Tick()
	PollEvents()
	Draw()
	Present() error
}

// Stats counts what the scheduler has done so far.
type Stats struct {
	Frames       uint64
	Ticks        uint64
	OverBudget   uint64
	DroppedTicks uint64
}

// Scheduler paces a Loop. It is confined to the loop goroutine.
type Scheduler struct {
	clock      Clock
	interval   time.Duration
	catchUpCap int

	lastUpdate time.Time
	lag        time.Duration
	stats      Stats

	log *log.Logger
}

// New creates a scheduler running at framerate ticks per second.
func New(framerate uint32, catchUpCap int, clock Clock, logger *log.Logger) (*Scheduler, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if catchUpCap <= 0 {
		catchUpCap = DefaultCatchUpCap
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Scheduler{
		clock:      clock,
		catchUpCap: catchUpCap,
		log:        logger.WithPrefix("scheduler"),
	}
	if err := s.SetFramerate(framerate); err != nil {
		return nil, err
	}
	return s, nil
}

// SetFramerate changes the target rate. The next frame uses the new interval.
// Rates above one tick per nanosecond run at one tick per nanosecond.
func (s *Scheduler) SetFramerate(n uint32) error {
	if n == 0 {
		return fmt.Errorf("scheduler: set framerate: %w", core.ErrInvalidFramerate)
	}
	s.interval = max(time.Second/time.Duration(n), time.Nanosecond)
	return nil
}

// Interval returns the target frame interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Stats returns the counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Lag returns how far the simulation is behind the clock after the last frame.
func (s *Scheduler) Lag() time.Duration {
	return s.lag
}

// Resync forgets accumulated lag, so time spent outside the loop (a swap, a
// long load) does not turn into a burst of catch-up ticks.
func (s *Scheduler) Resync() {
	s.lastUpdate = s.clock.Now()
	s.lag = 0
}

// Step runs one frame cycle. It reports false when the loop asked to stop.
func (s *Scheduler) Step(loop Loop) (bool, error) {
	frameStart := s.clock.Now()
	if s.lastUpdate.IsZero() {
		s.lastUpdate = frameStart
	}

	if !loop.Begin() {
		return false, nil
	}

	ticks := 0
	for frameStart.Sub(s.lastUpdate) >= s.interval && ticks < s.catchUpCap {
		loop.Tick()
		s.lastUpdate = s.lastUpdate.Add(s.interval)
		ticks++
	}
	s.stats.Ticks += uint64(ticks)
	if behind := frameStart.Sub(s.lastUpdate); s.interval > 0 && behind >= s.interval {
		dropped := uint64(behind / s.interval)
		s.stats.DroppedTicks += dropped
		s.lastUpdate = frameStart
		s.log.Debug("catch-up cap reached", "dropped", dropped)
	}
	s.lag = frameStart.Sub(s.lastUpdate)

	loop.PollEvents()
	loop.Draw()
	err := loop.Present()
	s.stats.Frames++

	elapsed := s.clock.Now().Sub(frameStart)
	if wait := s.interval - elapsed; wait > 0 {
		s.clock.Sleep(wait)
	} else {
		s.stats.OverBudget++
		s.log.Debug("frame over budget", "elapsed", elapsed, "budget", s.interval)
	}

	if err != nil {
		return false, fmt.Errorf("scheduler: present: %w", err)
	}
	return true, nil
}

// Run steps the loop until it stops, Present fails or ctx is cancelled.
// Cancellation is only noticed between frames.
func (s *Scheduler) Run(ctx context.Context, loop Loop) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ok, err := s.Step(loop)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
