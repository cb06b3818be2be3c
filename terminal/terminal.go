package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"
)

// ErrClosed is returned by draw calls after Fini
var ErrClosed = errors.New("terminal finalized")

// Terminal draws directly to the device with buffered ANSI output
// Draw calls are buffered; write failures surface from Flush
type Terminal struct {
	backend   Backend
	writer    *bufio.Writer
	colorMode ColorMode

	// Last emitted foreground, skips redundant SGR between glyphs
	lastFg  RGB
	fgValid bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewWithBackend creates a Terminal on an arbitrary backend
func NewWithBackend(b Backend, colorMode ColorMode) *Terminal {
	return &Terminal{
		backend:   b,
		writer:    bufio.NewWriterSize(b, 64*1024),
		colorMode: colorMode,
	}
}

// Init enters the alternate screen and hides the cursor
// Callers defer Fini immediately after a successful Init
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.writer.Write(csiAltScreenEnter)
	t.writer.Write(csiCursorHide)
	t.writer.Write(csiAutoWrapOff)
	if err := t.writer.Flush(); err != nil {
		t.backend.Fini()
		return err
	}

	t.initialized = true
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	// Drop any partial frame so restore sequences are not interleaved with it
	t.writer.Reset(t.backend)

	t.writer.Write(csiSGR0)
	t.writer.Write(csiCursorShow)
	t.writer.Write(csiAltScreenExit)
	// Re-enable wrap after leaving alt screen so the main buffer gets it
	t.writer.Write(csiAutoWrapOn)
	t.writer.Flush()

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *Terminal) Size() (int, int, error) {
	return t.backend.Size()
}

// ColorMode returns the color capability used for styling
func (t *Terminal) ColorMode() ColorMode {
	return t.colorMode
}

// Clear erases screen and scrollback and flushes immediately
func (t *Terminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ErrClosed
	}

	t.writer.Write(csiSGR0)
	t.writer.Write(csiClearAll)
	t.fgValid = false
	return t.writer.Flush()
}

// MoveTo positions the cursor (0-indexed), coordinates are not clamped
func (t *Terminal) MoveTo(x, y int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ErrClosed
	}

	writeCursorPos(t.writer, x, y)
	return nil
}

// Print writes a glyph at the cursor in the given foreground color
func (t *Terminal) Print(r rune, fg RGB) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ErrClosed
	}

	if !t.fgValid || fg != t.lastFg {
		writeFg(t.writer, fg, t.colorMode)
		t.lastFg = fg
		t.fgValid = true
	}

	if r < 0x80 {
		t.writer.WriteByte(byte(r))
	} else {
		t.writer.WriteRune(r)
	}
	return nil
}

// Flush writes buffered output to the device
func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ErrClosed
	}

	return t.writer.Flush()
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
