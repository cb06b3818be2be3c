package core

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

type fakeFinalizer struct {
	calls int
}

func (f *fakeFinalizer) Fini() { f.calls++ }

// captureCrash swaps the crash hooks for the duration of a test
func captureCrash(t *testing.T) (out, reset *bytes.Buffer, code *int) {
	t.Helper()
	out, reset = &bytes.Buffer{}, &bytes.Buffer{}
	code = new(int)
	*code = -1

	prevOut, prevReset, prevExit := crashOut, resetOut, crashExit
	crashOut, resetOut = out, reset
	crashExit = func(c int) { *code = c }
	t.Cleanup(func() {
		crashOut, resetOut, crashExit = prevOut, prevReset, prevExit
		SetCrashTerminal(nil)
	})
	return out, reset, code
}

// TestHandleCrashNil verifies a nil recover value is ignored
func TestHandleCrashNil(t *testing.T) {
	out, reset, code := captureCrash(t)
	HandleCrash(nil)
	if out.Len() != 0 || reset.Len() != 0 || *code != -1 {
		t.Error("Expected HandleCrash(nil) to do nothing")
	}
}

// TestHandleCrashRegisteredTerminal verifies the registered terminal is restored before exit
func TestHandleCrashRegisteredTerminal(t *testing.T) {
	out, reset, code := captureCrash(t)
	fin := &fakeFinalizer{}
	SetCrashTerminal(fin)

	HandleCrash("boom")

	if fin.calls != 1 {
		t.Errorf("Expected terminal Fini once, got %d", fin.calls)
	}
	if reset.Len() != 0 {
		t.Error("Expected no raw reset when a terminal is registered")
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: boom") {
		t.Errorf("Expected crash banner, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Stack Trace:") {
		t.Error("Expected stack trace in crash output")
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
}

// TestHandleCrashFallback verifies the emergency reset runs without a registered terminal
func TestHandleCrashFallback(t *testing.T) {
	_, reset, code := captureCrash(t)

	HandleCrash("no terminal")

	if !strings.Contains(reset.String(), "\x1b[?25h") {
		t.Errorf("Expected cursor show in emergency reset, got %q", reset.String())
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
}

// TestGoRecovers verifies panics in managed goroutines reach the crash handler
func TestGoRecovers(t *testing.T) {
	out, _, code := captureCrash(t)

	var wg sync.WaitGroup
	wg.Add(1)
	prevExit := crashExit
	crashExit = func(c int) {
		prevExit(c)
		wg.Done()
	}

	Go(func() { panic("worker failed") })
	wg.Wait()

	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if !strings.Contains(out.String(), "worker failed") {
		t.Errorf("Expected panic value in crash output, got %q", out.String())
	}
}

// orderedFinalizer reports whether it was still the crash terminal on its first Fini
type orderedFinalizer struct {
	calls             int
	registeredAtFirst bool
}

func (f *orderedFinalizer) Fini() {
	if f.calls == 0 {
		f.registeredAtFirst = crashTerminal.Load() != nil
	}
	f.calls++
}

// TestGuardPanicKeepsTerminal verifies a panic is handled before the terminal is unregistered
func TestGuardPanicKeepsTerminal(t *testing.T) {
	out, reset, code := captureCrash(t)
	fin := &orderedFinalizer{}

	Guard(fin, func() error { panic("render failed") })

	if !fin.registeredAtFirst {
		t.Error("Expected crash handler to finalize the registered terminal")
	}
	if reset.Len() != 0 {
		t.Errorf("Expected no raw reset after a guarded panic, got %q", reset.String())
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: render failed") {
		t.Errorf("Expected crash banner, got %q", out.String())
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if crashTerminal.Load() != nil {
		t.Error("Expected crash terminal cleared after Guard")
	}
}

// TestGuardReturn verifies the normal path finalizes once and passes the error through
func TestGuardReturn(t *testing.T) {
	_, reset, code := captureCrash(t)
	fin := &fakeFinalizer{}
	want := errors.New("audio device busy")

	var registered bool
	err := Guard(fin, func() error {
		registered = crashTerminal.Load() != nil
		return want
	})

	if !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
	if !registered {
		t.Error("Expected terminal registered while fn runs")
	}
	if fin.calls != 1 {
		t.Errorf("Expected Fini once, got %d", fin.calls)
	}
	if crashTerminal.Load() != nil {
		t.Error("Expected crash terminal cleared after Guard")
	}
	if reset.Len() != 0 || *code != -1 {
		t.Error("Expected no crash handling on the normal path")
	}
}
