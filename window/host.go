package window

import "github.com/plus3/viewcore/ecs"

// Host is the write side of the window registry. Backends call it to report
// window lifecycle changes; it keeps the registry and the event queues in step.
type Host struct {
	Windows *Windows
	Resized *ecs.Events[WindowResized]
	Created *ecs.Events[WindowCreated]
}

// Setup installs the Windows singleton and both event queues into the
// scheduler's storage and returns a Host bound to them.
func Setup(scheduler *ecs.Scheduler) *Host {
	storage := scheduler.Storage()
	windows := ecs.GetSingleton[Windows](storage)
	if windows == nil {
		storage.AddSingleton(NewWindows())
		windows = ecs.GetSingleton[Windows](storage)
	}

	return &Host{
		Windows: windows,
		Resized: ecs.AddEvents[WindowResized](scheduler),
		Created: ecs.AddEvents[WindowCreated](scheduler),
	}
}

// Create registers a window and sends WindowCreated.
func (h *Host) Create(win Window) *Window {
	stored := h.Windows.Add(win)
	h.Created.Send(WindowCreated{Id: win.Id})
	return stored
}

// Resize updates a window's physical size and sends WindowResized with the
// resulting logical size. Unknown windows and unchanged sizes send nothing.
func (h *Host) Resize(id WindowId, physicalWidth, physicalHeight uint32) bool {
	win, ok := h.Windows.Get(id)
	if !ok {
		return false
	}
	if win.PhysicalWidth == physicalWidth && win.PhysicalHeight == physicalHeight {
		return false
	}

	h.Windows.Resize(id, physicalWidth, physicalHeight)
	h.Resized.Send(WindowResized{Id: id, Width: win.Width(), Height: win.Height()})
	return true
}

// SetScaleFactor changes a window's scale factor and sends WindowResized, since
// the logical size moves with it.
func (h *Host) SetScaleFactor(id WindowId, scale float64) bool {
	win, ok := h.Windows.Get(id)
	if !ok || win.ScaleFactor == scale {
		return false
	}

	win.ScaleFactor = scale
	h.Resized.Send(WindowResized{Id: id, Width: win.Width(), Height: win.Height()})
	return true
}

// Layout reports a backend's logical size and scale factor for a window, as
// toolkits such as ebiten hand them out each frame. Only real changes send
// events. Returns true if anything changed.
func (h *Host) Layout(id WindowId, logicalWidth, logicalHeight int, scale float64) bool {
	if scale <= 0 {
		scale = 1
	}
	scaled := h.SetScaleFactor(id, scale)
	resized := h.Resize(id, uint32(float64(logicalWidth)*scale), uint32(float64(logicalHeight)*scale))
	return scaled || resized
}
