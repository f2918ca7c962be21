// Package objparams loads the object parameter catalog, a set of JSON
// files describing the memory layout of game classes, and resolves it
// into flat field lists that can be read from a running game.
package objparams

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrUnknownType indicates the type is neither in the catalog nor
	// covered by a "_default" entry.
	ErrUnknownType = errors.New("objparams: unknown type")

	// ErrNotClass indicates a class operation was used on a primitive.
	ErrNotClass = errors.New("objparams: type is not a class")
)

// LoadError reports a catalog that could not be loaded.
type LoadError struct {
	Path string // directory or file involved
	Err  error  // underlying error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("objparams: cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
