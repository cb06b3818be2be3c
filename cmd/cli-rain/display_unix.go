//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package main

import "github.com/FlowLightGames/CLI-Rain/terminal"

const displayName = "ansi terminal"

// openDisplay enters the alternate screen on stdout with 24-bit color
func openDisplay() (display, error) {
	term := terminal.New()
	if err := term.Init(); err != nil {
		return nil, err
	}
	return term, nil
}

// watchInterrupt is a no-op; Ctrl-C reaches the controller as SIGINT
func watchInterrupt(display, func()) {}
