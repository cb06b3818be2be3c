package render

import "github.com/FlowLightGames/CLI-Rain/terminal"

// Sink receives the draw calls for one frame
// terminal.Terminal and terminal.Screen implement it
type Sink interface {
	// Clear erases the display and flushes
	Clear() error

	// MoveTo positions the cursor (0-indexed column, row)
	MoveTo(x, y int) error

	// Print writes a glyph at the cursor in the given foreground
	Print(r rune, fg terminal.RGB) error

	// Flush presents buffered output
	Flush() error

	// Size returns the current grid dimensions
	Size() (width, height int, err error)
}
