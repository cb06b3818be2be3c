//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

// resetTerminalMode is a no-op; console input mode belongs to tcell's Fini
func resetTerminalMode() {}
