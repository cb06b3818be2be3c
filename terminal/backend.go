package terminal

import (
	"errors"
	"io"
)

// Sentinel errors
var (
	ErrNotTerminal = errors.New("stdout is not a terminal")
	ErrInvalidSize = errors.New("invalid terminal dimensions")
)

// Backend abstracts platform-specific terminal operations
// Tests substitute an in-memory implementation
type Backend interface {
	io.Writer

	// Init prepares the device (echo off); Fini undoes it
	Init() error
	Fini()

	// Size queries the current dimensions in cells
	Size() (width, height int, err error)
}
