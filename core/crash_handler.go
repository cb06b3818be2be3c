package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/FlowLightGames/CLI-Rain/terminal"
)

// Finalizer restores a terminal; satisfied by *terminal.Terminal and *terminal.Screen
type Finalizer interface {
	Fini()
}

var crashTerminal atomic.Pointer[Finalizer]

// Hooks replaced in tests
var (
	crashOut  io.Writer = os.Stderr
	resetOut  io.Writer = os.Stdout
	crashExit           = os.Exit
)

// SetCrashTerminal registers the terminal restored by HandleCrash
// Passing nil falls back to the raw emergency reset
func SetCrashTerminal(f Finalizer) {
	if f == nil {
		crashTerminal.Store(nil)
		return
	}
	crashTerminal.Store(&f)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if f := crashTerminal.Load(); f != nil {
		(*f).Fini()
	} else {
		terminal.EmergencyReset(resetOut)
	}

	if s, ok := resetOut.(interface{ Sync() error }); ok {
		s.Sync()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

// Guard runs fn with f registered as the crash terminal
// A panic in fn reaches HandleCrash while f is still registered; f is finalized on every path before Guard returns
func Guard(f Finalizer, fn func() error) error {
	SetCrashTerminal(f)
	defer SetCrashTerminal(nil)
	defer f.Fini()
	defer func() {
		if r := recover(); r != nil {
			HandleCrash(r)
		}
	}()
	return fn()
}
