package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

type countingLoop struct {
	clock *ManualClock
	// stopAfter ends the loop once this many frames began; 0 runs forever.
	stopAfter int
	// frameCost is how long drawing takes on the manual clock.
	frameCost time.Duration

	begins, ticks, polls, draws, presents int
	// ticksPerFrame records the ticks run in each frame.
	ticksPerFrame []int
	lastTicks     int

	order []string
}

func (l *countingLoop) Begin() bool {
	l.begins++
	l.order = append(l.order, "begin")
	l.lastTicks = l.ticks
	return l.stopAfter == 0 || l.begins <= l.stopAfter
}

func (l *countingLoop) Tick() {
	l.ticks++
	l.order = append(l.order, "tick")
}

func (l *countingLoop) PollEvents() {
	l.polls++
	l.order = append(l.order, "poll")
}

func (l *countingLoop) Draw() {
	l.draws++
	l.order = append(l.order, "draw")
	l.ticksPerFrame = append(l.ticksPerFrame, l.ticks-l.lastTicks)
	if l.frameCost > 0 {
		l.clock.Advance(l.frameCost)
	}
}

func (l *countingLoop) Present() error {
	l.presents++
	l.order = append(l.order, "present")
	return nil
}

func TestFramePacing(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewManualClock(start)
	s, err := New(50, DefaultCatchUpCap, clock, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	loop := &countingLoop{clock: clock}

	for i := 0; i < 500; i++ {
		if _, err := s.Step(loop); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}

	elapsed := clock.Now().Sub(start)
	expected := int(elapsed / (20 * time.Millisecond))
	if diff := loop.ticks - expected; diff < -1 || diff > 1 {
		t.Errorf("ticks = %d, expected %d ± 1 (elapsed %v)", loop.ticks, expected, elapsed)
	}
	if loop.draws != 500 || loop.presents != 500 {
		t.Errorf("draws = %d, presents = %d, expected 500 each", loop.draws, loop.presents)
	}
	for i, n := range loop.ticksPerFrame {
		if n > DefaultCatchUpCap {
			t.Fatalf("frame %d ran %d ticks, cap is %d", i, n, DefaultCatchUpCap)
		}
	}
}

func TestCatchUpCap(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, _ := New(50, 3, clock, nil)
	loop := &countingLoop{clock: clock}

	_, _ = s.Step(loop)
	clock.Advance(time.Second)
	_, _ = s.Step(loop)

	last := loop.ticksPerFrame[len(loop.ticksPerFrame)-1]
	if last != 3 {
		t.Errorf("ticks after a stall = %d, expected the cap 3", last)
	}
	if s.Stats().DroppedTicks == 0 {
		t.Error("Stats().DroppedTicks = 0, expected the excess to be dropped")
	}

	// The backlog is gone: the next frame is back to a single tick.
	_, _ = s.Step(loop)
	if last := loop.ticksPerFrame[len(loop.ticksPerFrame)-1]; last != 1 {
		t.Errorf("ticks after recovery = %d, expected 1", last)
	}
}

func TestDrawOncePerFrame(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, _ := New(50, 10, clock, nil)
	loop := &countingLoop{clock: clock}

	_, _ = s.Step(loop)
	// 20ms slept plus 80ms stalled: five intervals behind.
	clock.Advance(80 * time.Millisecond)
	loop.order = nil
	_, _ = s.Step(loop)

	expected := []string{"begin", "tick", "tick", "tick", "tick", "tick", "poll", "draw", "present"}
	if len(loop.order) != len(expected) {
		t.Fatalf("order = %v, expected %v", loop.order, expected)
	}
	for i := range expected {
		if loop.order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", loop.order, expected)
		}
	}
}

func TestStopBeforeDraw(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, _ := New(50, 0, clock, nil)
	loop := &countingLoop{clock: clock, stopAfter: 3}

	if err := s.Run(context.Background(), loop); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if loop.begins != 4 || loop.draws != 3 {
		t.Errorf("begins = %d, draws = %d; expected 4 and 3", loop.begins, loop.draws)
	}
}

func TestOverBudgetFrameDoesNotSleep(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, _ := New(50, 0, clock, nil)
	loop := &countingLoop{clock: clock, frameCost: 30 * time.Millisecond}

	_, _ = s.Step(loop)
	if clock.Slept() != 0 {
		t.Errorf("Slept() = %v, expected 0", clock.Slept())
	}
	if s.Stats().OverBudget != 1 {
		t.Errorf("Stats().OverBudget = %d, expected 1", s.Stats().OverBudget)
	}

	loop.frameCost = 5 * time.Millisecond
	_, _ = s.Step(loop)
	if clock.Slept() != 15*time.Millisecond {
		t.Errorf("Slept() = %v, expected 15ms", clock.Slept())
	}
}

func TestInvalidFramerate(t *testing.T) {
	if _, err := New(0, 0, nil, nil); !errors.Is(err, core.ErrInvalidFramerate) {
		t.Errorf("New(0) = %v, expected ErrInvalidFramerate", err)
	}
	s, _ := New(60, 0, nil, nil)
	if err := s.SetFramerate(0); !errors.Is(err, core.ErrInvalidFramerate) {
		t.Errorf("SetFramerate(0) = %v, expected ErrInvalidFramerate", err)
	}
	if err := s.SetFramerate(25); err != nil || s.Interval() != 40*time.Millisecond {
		t.Errorf("SetFramerate(25) = %v, Interval() = %v", err, s.Interval())
	}
}

func TestFramerateBeyondClockResolution(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, err := New(2_000_000_000, 5, clock, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Interval() != time.Nanosecond {
		t.Fatalf("Interval() = %v, expected 1ns", s.Interval())
	}
	loop := &countingLoop{clock: clock}

	_, _ = s.Step(loop)
	clock.Advance(time.Microsecond)
	if _, err := s.Step(loop); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if last := loop.ticksPerFrame[len(loop.ticksPerFrame)-1]; last != 5 {
		t.Errorf("ticks = %d, expected the cap 5", last)
	}
	if s.Stats().DroppedTicks == 0 {
		t.Error("Stats().DroppedTicks = 0, expected the backlog to be dropped")
	}

	if err := s.SetFramerate(^uint32(0)); err != nil || s.Interval() != time.Nanosecond {
		t.Errorf("SetFramerate(max) = %v, Interval() = %v", err, s.Interval())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, _ := New(50, 0, clock, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, &countingLoop{clock: clock}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
}

func TestResync(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s, _ := New(50, 0, clock, nil)
	loop := &countingLoop{clock: clock}

	_, _ = s.Step(loop)
	clock.Advance(2 * time.Second)
	s.Resync()
	_, _ = s.Step(loop)

	if loop.ticks != 0 {
		t.Errorf("ticks after Resync = %d, expected 0", loop.ticks)
	}
}
