//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/FlowLightGames/CLI-Rain/terminal"
)

const displayName = "tcell console"

// openDisplay takes over the console through tcell
func openDisplay() (display, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	screen, err := terminal.OpenScreen(s)
	if err != nil {
		return nil, err
	}
	return screen, nil
}

// watchInterrupt forwards Ctrl-C key events, which tcell consumes before they become signals
func watchInterrupt(d display, stop func()) {
	if s, ok := d.(*terminal.Screen); ok {
		s.WatchInterrupt(stop)
	}
}
