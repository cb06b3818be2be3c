//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State
}

// New creates a Terminal on stdout
// Output is 24-bit color unless a mode is given; the environment is not consulted
func New(colorMode ...ColorMode) *Terminal {
	c := ColorModeTrueColor
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return NewWithBackend(newBackend(), c)
}

func newBackend() Backend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// Init verifies stdout is a tty and disables input echo
// Canonical mode and ISIG stay on so Ctrl-C still raises SIGINT
func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return ErrNotTerminal
	}

	// Stdin may be redirected; echo suppression is best-effort
	if !term.IsTerminal(b.inFd) {
		return nil
	}
	old, err := term.GetState(b.inFd)
	if err != nil {
		return fmt.Errorf("read terminal state: %w", err)
	}
	termios, err := unix.IoctlGetTermios(b.inFd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("read termios: %w", err)
	}
	termios.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(b.inFd, ioctlSetTermios, termios); err != nil {
		return fmt.Errorf("disable echo: %w", err)
	}
	b.oldTerm = old
	return nil
}

func (b *unixBackend) Fini() {
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

func (b *unixBackend) Size() (int, int, error) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	if ws.Col == 0 || ws.Row == 0 {
		return 0, 0, ErrInvalidSize
	}
	return int(ws.Col), int(ws.Row), nil
}
