package core

import (
	"errors"
	"fmt"
)

// Contract violations. These are programming errors in a game unit; the
// runtime raises them loudly instead of recovering.
var (
	ErrDuplicateResourceID = errors.New("duplicate resource id")
	ErrUnknownResourceID   = errors.New("unknown resource id")
	ErrInvalidFramerate    = errors.New("framerate must be greater than zero")
	ErrInvalidCellSize     = errors.New("cell pixel size must be greater than zero")
	ErrAlreadyCapturing    = errors.New("text capture already started")
	ErrNotCapturing        = errors.New("text capture not started")
)

// Causes carried by LoadError.
var (
	ErrMissingEntryPoint = errors.New("missing entry point")
	ErrABIMismatch       = errors.New("abi version mismatch")
	ErrBadFormat         = errors.New("unsupported unit format")
	ErrNoBackend         = errors.New("no active display backend")
)

// LoadError reports a unit that could not be opened or instantiated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReloadError reports a texture that could not be rematerialized on a new
// display backend.
type ReloadError struct {
	ID  TextureID
	Err error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("reload texture %d: %v", e.ID, e.Err)
}

func (e *ReloadError) Unwrap() error {
	return e.Err
}

// IsContractViolation reports whether err stems from caller misuse rather
// than the environment.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrDuplicateResourceID) ||
		errors.Is(err, ErrUnknownResourceID) ||
		errors.Is(err, ErrInvalidFramerate) ||
		errors.Is(err, ErrInvalidCellSize) ||
		errors.Is(err, ErrAlreadyCapturing) ||
		errors.Is(err, ErrNotCapturing)
}
