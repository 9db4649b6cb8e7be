// Package window tracks the windows a renderer draws into and the events
// emitted when they appear or change size.
package window

import (
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
)

// WindowId identifies a window. The zero value is the primary window.
type WindowId uint32

// PrimaryWindow is the window cameras target unless told otherwise.
const PrimaryWindow WindowId = 0

func (id WindowId) String() string {
	if id == PrimaryWindow {
		return "primary"
	}
	return fmt.Sprintf("window#%d", uint32(id))
}

// Window describes one OS or terminal window. Sizes are physical pixels.
type Window struct {
	Id             WindowId
	Title          string
	PhysicalWidth  uint32
	PhysicalHeight uint32
	ScaleFactor    float64
}

func (w *Window) scale() float64 {
	if w.ScaleFactor <= 0 {
		return 1
	}
	return w.ScaleFactor
}

// Width returns the logical width, physical width divided by the scale factor.
func (w *Window) Width() float32 {
	return float32(float64(w.PhysicalWidth) / w.scale())
}

// Height returns the logical height, physical height divided by the scale factor.
func (w *Window) Height() float32 {
	return float32(float64(w.PhysicalHeight) / w.scale())
}

// Windows is the registry of open windows, stored as a singleton.
type Windows struct {
	byId  *intmap.Map[WindowId, *Window]
	order []WindowId
}

// NewWindows creates an empty registry.
func NewWindows() *Windows {
	return &Windows{byId: intmap.New[WindowId, *Window](4)}
}

// Add registers a window, replacing any window with the same id.
func (w *Windows) Add(win Window) *Window {
	stored := &win
	if _, exists := w.byId.Get(win.Id); !exists {
		w.order = append(w.order, win.Id)
	}
	w.byId.Put(win.Id, stored)
	return stored
}

// Get looks up a window by id.
func (w *Windows) Get(id WindowId) (*Window, bool) {
	return w.byId.Get(id)
}

// Remove drops a window. Returns false if it was not registered.
func (w *Windows) Remove(id WindowId) bool {
	if !w.byId.Del(id) {
		return false
	}
	w.order = slices.DeleteFunc(w.order, func(other WindowId) bool { return other == id })
	return true
}

// Resize sets the physical size of a window. Returns false if it is unknown.
func (w *Windows) Resize(id WindowId, physicalWidth, physicalHeight uint32) bool {
	win, ok := w.byId.Get(id)
	if !ok {
		return false
	}
	win.PhysicalWidth = physicalWidth
	win.PhysicalHeight = physicalHeight
	return true
}

// Ids returns the registered window ids in registration order.
func (w *Windows) Ids() []WindowId {
	return slices.Clone(w.order)
}

// Len returns the number of registered windows.
func (w *Windows) Len() int {
	return w.byId.Len()
}
