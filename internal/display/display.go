package display

import (
	"fmt"
	"io"
	"sync"

	"minimalmon/internal/system"
	"minimalmon/internal/view"
)

const clearScreen = "\033[H\033[2J"

// Display is a passive surface that shows the latest snapshot
type Display interface {
	Show(snap *system.Snapshot)
}

// Terminal writes the rendered view to a writer, replacing the previous one
type Terminal struct {
	w     io.Writer
	clear bool
	mu    sync.Mutex
}

// NewTerminal returns a Terminal writing to w. With clear set, each view
// starts on a cleared screen.
func NewTerminal(w io.Writer, clear bool) *Terminal {
	return &Terminal{w: w, clear: clear}
}

// Show writes one rendered view. Write errors are dropped; the next tick
// redraws the whole view.
func (t *Terminal) Show(snap *system.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.clear {
		_, _ = io.WriteString(t.w, clearScreen)
	}
	_, _ = fmt.Fprint(t.w, view.Render(snap).String())
}

// Multi fans a snapshot out to several surfaces in order
type Multi []Display

// Show passes snap to every surface
func (m Multi) Show(snap *system.Snapshot) {
	for _, d := range m {
		d.Show(snap)
	}
}
