// Package termwindow drives a window from a tcell terminal screen. The terminal
// grid is treated as a framebuffer of fixed-size cells.
package termwindow

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/viewcore/window"
)

const (
	// DefaultCellWidth and DefaultCellHeight approximate a monospace glyph in pixels.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	eventBuffer = 64
)

// Window binds a tcell screen to one entry in the window registry.
type Window struct {
	Id         window.WindowId
	CellWidth  uint32
	CellHeight uint32

	screen tcell.Screen
	host   *window.Host
	events chan tcell.Event
	done   chan struct{}
	exited chan struct{}
	stop   sync.Once
	quit   bool
}

// New registers screen as window id. The screen must already be initialized.
func New(screen tcell.Screen, host *window.Host, id window.WindowId, title string) *Window {
	w := &Window{
		Id:         id,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		screen:     screen,
		host:       host,
	}

	cols, rows := screen.Size()
	pw, ph := w.physical(cols, rows)
	host.Create(window.Window{
		Id:             id,
		Title:          title,
		PhysicalWidth:  pw,
		PhysicalHeight: ph,
		ScaleFactor:    1,
	})
	return w
}

func (w *Window) physical(cols, rows int) (uint32, uint32) {
	return uint32(max(cols, 0)) * w.CellWidth, uint32(max(rows, 0)) * w.CellHeight
}

// Screen returns the underlying tcell screen.
func (w *Window) Screen() tcell.Screen {
	return w.screen
}

// Start polls the screen on a goroutine so Pump never blocks. The goroutine
// exits once the screen is finalized or Stop was called.
func (w *Window) Start() {
	w.events = make(chan tcell.Event, eventBuffer)
	w.done = make(chan struct{})
	w.exited = make(chan struct{})
	go func() {
		defer close(w.exited)
		defer close(w.events)
		for {
			ev := w.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case w.events <- ev:
			case <-w.done:
				return
			}
		}
	}()
}

// Stop tells the poll goroutine to exit instead of queueing more events. Pump
// calls it once the window quits. It is safe to call more than once.
func (w *Window) Stop() {
	if w.done == nil {
		return
	}
	w.stop.Do(func() { close(w.done) })
}

// Exited is closed once the poll goroutine has returned. It is nil before Start.
func (w *Window) Exited() <-chan struct{} {
	return w.exited
}

// Pump handles every event queued since the last call. It returns false once
// the user asked to quit or the screen was finalized.
func (w *Window) Pump() bool {
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return false
			}
			if !w.Handle(ev) {
				w.Stop()
				return false
			}
		default:
			if w.quit {
				w.Stop()
			}
			return !w.quit
		}
	}
}

// Handle applies one terminal event. Resizes update the registry and send
// WindowResized. Escape, q and Ctrl-C request quit and make Handle return false.
func (w *Window) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		pw, ph := w.physical(cols, rows)
		w.host.Resize(w.Id, pw, ph)
		w.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			w.quit = true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			w.quit = true
		}
	}
	return !w.quit
}

// Line is one row of text drawn by Draw.
type Line struct {
	Text  string
	Style tcell.Style
}

// Draw clears the screen, writes lines from the top-left corner and shows the
// result. Text past the right edge or lines past the bottom are cut off.
func (w *Window) Draw(lines []Line) {
	w.screen.Clear()
	cols, rows := w.screen.Size()
	for y, line := range lines {
		if y >= rows {
			break
		}
		x := 0
		for _, r := range line.Text {
			if x >= cols {
				break
			}
			w.screen.SetContent(x, y, r, nil, line.Style)
			x++
		}
	}
	w.screen.Show()
}
