// Package terminal provides the ANSI output sink for the rain renderer.
//
// Features:
//   - True color (24-bit) and 256-color palette foreground styling
//   - Buffered direct draw: clear, cursor positioning, styled glyph print, flush
//   - Alternate screen and cursor visibility, restored by an idempotent Fini
//   - Crash-path restoration via EmergencyReset
//   - A tcell screen sink implementing the same draw calls, used where the ANSI backend is unavailable
//
// Escape sequences are emitted directly without terminfo.
// The ANSI backend targets Linux, macOS and the BSDs; other platforms draw through tcell.
package terminal
