// Package module manages the lifecycle of hot-loadable units: the library a
// unit came from and the single instance the runtime drives.
package module

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// State is the lifecycle stage of a slot.
type State int

const (
	Unloaded State = iota
	Loaded
	Active
	Unloading
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Active:
		return "active"
	case Unloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// ErrSlotBusy is returned when loading into a slot that already holds a unit.
var ErrSlotBusy = errors.New("slot already holds a unit")

// ErrSlotEmpty is returned when unloading a slot that holds nothing.
var ErrSlotEmpty = errors.New("slot is empty")

// Library is an opened unit binary. Close releases it; the runtime never
// calls Close while an instance created from the library is alive.
type Library interface {
	Path() string
	Close(ctx context.Context) error
}

// OpenFunc opens the unit at path and creates one instance from it.
type OpenFunc[T any] func(ctx context.Context, path string) (Library, T, error)

// DestroyFunc tears an instance down. It runs before the library is closed.
type DestroyFunc[T any] func(inst T) error

// Slot holds at most one active unit of a kind.
// Slots are confined to the loop goroutine.
type Slot[T any] struct {
	kind    registry.Kind
	open    OpenFunc[T]
	destroy DestroyFunc[T]

	state State
	lib   Library
	inst  T

	log *log.Logger
}

// NewSlot creates an empty slot.
func NewSlot[T any](kind registry.Kind, open OpenFunc[T], destroy DestroyFunc[T], logger *log.Logger) *Slot[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Slot[T]{
		kind:    kind,
		open:    open,
		destroy: destroy,
		log:     logger.WithPrefix(kind.String()),
	}
}

// State returns the slot's lifecycle stage.
func (s *Slot[T]) State() State {
	return s.state
}

// Instance returns the active instance, or the zero value.
func (s *Slot[T]) Instance() T {
	return s.inst
}

// Path returns the path of the unit in the slot, or "".
func (s *Slot[T]) Path() string {
	if s.lib == nil {
		return ""
	}
	return s.lib.Path()
}

// Load opens a unit into an empty slot and makes it active. On failure the
// slot stays Unloaded.
func (s *Slot[T]) Load(ctx context.Context, path string) error {
	if s.state != Unloaded {
		return fmt.Errorf("module: load %s: %w", path, ErrSlotBusy)
	}
	st, err := s.Stage(ctx, path)
	if err != nil {
		return err
	}
	return st.Promote(ctx)
}

// Unload tears the active unit down: the instance first, then its library.
func (s *Slot[T]) Unload(ctx context.Context) error {
	if s.state == Unloaded {
		return fmt.Errorf("module: unload %s: %w", s.kind, ErrSlotEmpty)
	}
	s.state = Unloading
	path := s.lib.Path()
	err := teardown(ctx, s.lib, s.inst, s.destroy)

	var zero T
	s.inst = zero
	s.lib = nil
	s.state = Unloaded

	if err != nil {
		s.log.Error("unload failed", "path", path, "err", err)
		return fmt.Errorf("module: unload %s: %w", path, err)
	}
	s.log.Debug("unloaded", "path", path)
	return nil
}

// Swap loads a new unit and, only when that succeeds, replaces the active one.
func (s *Slot[T]) Swap(ctx context.Context, path string) error {
	st, err := s.Stage(ctx, path)
	if err != nil {
		return err
	}
	return st.Promote(ctx)
}

// Stage opens a unit next to the active one without touching it.
func (s *Slot[T]) Stage(ctx context.Context, path string) (*Staged[T], error) {
	lib, inst, err := s.open(ctx, path)
	if err != nil {
		s.log.Warn("load failed", "path", path, "err", err)
		return nil, err
	}
	s.log.Debug("staged", "path", path)
	return &Staged[T]{slot: s, lib: lib, inst: inst, state: Loaded}, nil
}

// Staged is a unit in the Loaded state, waiting to be promoted or discarded.
type Staged[T any] struct {
	slot  *Slot[T]
	lib   Library
	inst  T
	state State
}

// Instance returns the staged instance.
func (st *Staged[T]) Instance() T {
	return st.inst
}

// Path returns the staged unit's path.
func (st *Staged[T]) Path() string {
	return st.lib.Path()
}

// Promote tears the slot's previous unit down and makes the staged one
// active. A teardown error of the old unit is reported but the new unit is
// active regardless.
func (st *Staged[T]) Promote(ctx context.Context) error {
	if st.state != Loaded {
		return fmt.Errorf("module: promote %s: unit is %s", st.lib.Path(), st.state)
	}
	s := st.slot

	var err error
	if s.state != Unloaded {
		err = s.Unload(ctx)
	}

	s.lib = st.lib
	s.inst = st.inst
	s.state = Active
	st.state = Active
	s.log.Info("active", "path", st.lib.Path())
	return err
}

// Discard tears the staged unit down, instance before library.
func (st *Staged[T]) Discard(ctx context.Context) error {
	if st.state != Loaded {
		return nil
	}
	st.state = Unloaded
	if err := teardown(ctx, st.lib, st.inst, st.slot.destroy); err != nil {
		return fmt.Errorf("module: discard %s: %w", st.lib.Path(), err)
	}
	return nil
}

func teardown[T any](ctx context.Context, lib Library, inst T, destroy DestroyFunc[T]) error {
	var errs []error
	if destroy != nil {
		if err := destroy(inst); err != nil {
			errs = append(errs, fmt.Errorf("destroy instance: %w", err))
		}
	}
	if err := lib.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close library: %w", err))
	}
	return errors.Join(errs...)
}
