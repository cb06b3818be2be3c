package terminal

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// Screen adapts a tcell.Screen to the direct-draw calls used by the renderer
// Print writes into the cell at the cursor and advances it; Flush shows the frame
type Screen struct {
	screen tcell.Screen
	x, y   int

	// Set for screens initialized by OpenScreen, which Fini releases
	owned     bool
	finalized atomic.Bool
}

// NewScreen wraps an initialized tcell screen owned by the caller
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// OpenScreen initializes s with the cursor hidden and takes ownership of it
// Callers defer Fini immediately after a successful open
func OpenScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s, owned: true}, nil
}

// Fini restores the console for an owned screen. Safe to call multiple times
func (s *Screen) Fini() {
	if !s.finalized.CompareAndSwap(false, true) {
		return
	}
	if s.owned {
		s.screen.Fini()
	}
}

// WatchInterrupt calls stop once Ctrl-C arrives as a key event
// tcell reads the console raw, so the key never becomes a signal
// The watcher exits when the screen is finalized
func (s *Screen) WatchInterrupt(stop func()) {
	go func() {
		for {
			switch ev := s.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					stop()
					return
				}
			}
		}
	}()
}

// Size returns the screen dimensions
func (s *Screen) Size() (int, int, error) {
	w, h := s.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, ErrInvalidSize
	}
	return w, h, nil
}

// Clear blanks every cell and shows the empty frame
func (s *Screen) Clear() error {
	if s.finalized.Load() {
		return ErrClosed
	}
	s.screen.Clear()
	s.screen.Show()
	return nil
}

// MoveTo positions the draw cursor (0-indexed); the hardware cursor stays hidden
func (s *Screen) MoveTo(x, y int) error {
	if s.finalized.Load() {
		return ErrClosed
	}
	s.x, s.y = x, y
	return nil
}

// Print sets the cell under the cursor; off-screen cells are ignored by tcell
func (s *Screen) Print(r rune, fg RGB) error {
	if s.finalized.Load() {
		return ErrClosed
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
	s.screen.SetContent(s.x, s.y, r, nil, style)
	s.x++
	return nil
}

// Flush presents pending changes
func (s *Screen) Flush() error {
	if s.finalized.Load() {
		return ErrClosed
	}
	s.screen.Show()
	return nil
}

// Cell returns the glyph and foreground at (x, y)
func (s *Screen) Cell(x, y int) (rune, RGB) {
	r, _, style, _ := s.screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	if !fg.Valid() {
		return r, RGB{}
	}
	cr, cg, cb := fg.RGB()
	return r, RGB{uint8(cr), uint8(cg), uint8(cb)}
}

// Cursor returns the current draw cursor position
func (s *Screen) Cursor() (int, int) {
	return s.x, s.y
}
