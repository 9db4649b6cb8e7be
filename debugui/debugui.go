// Package debugui draws Dear ImGui panels for a running world: frame and
// system timings, a live camera inspector and an archetype viewer for the
// render world. Panels are entities carrying an ImguiItem; ImguiSystem defers
// their render functions to the end of the frame so they see the world after
// every system has run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/viewcore/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming input this frame.
// Input handlers check it before reacting to mouse or keyboard events.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem's render
// function as a deferred command.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]

	// Capture reports the current capture state. Nil reads imgui.CurrentIO,
	// which needs a live ImGui context.
	Capture func() ImguiInputState
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := s.InputState.Get(); state != nil {
		capture := s.Capture
		if capture == nil {
			capture = currentCapture
		}
		*state = capture()
	}

	for item := range s.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

func currentCapture() ImguiInputState {
	io := imgui.CurrentIO()
	return ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// RegisterComponents registers the components used by this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Panels are the debug windows spawned by Spawn. RenderWorld is nil when no
// render world was given.
type Panels struct {
	Performance *PerformanceStats
	Cameras     *CameraInspector
	RenderWorld *ArchetypeViewer
}

// Spawn adds the performance and camera panels to storage and makes sure the
// input state singleton exists. The scheduler is read for per-system timings.
// When renderWorld is not nil an archetype viewer over it is added too.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler, renderWorld *ecs.Storage, historyFrames int) Panels {
	ecs.NewSingleton[ImguiInputState](storage)

	panels := Panels{
		Performance: NewPerformanceStats(historyFrames),
		Cameras:     NewCameraInspector(storage),
	}
	timer := NewFrameTimer()
	storage.Spawn(ImguiItem{Render: func() {
		panels.Performance.Render(storage, scheduler, timer.DeltaTime())
	}})
	storage.Spawn(ImguiItem{Render: panels.Cameras.Render})

	if renderWorld != nil {
		panels.RenderWorld = NewArchetypeViewer("Render World", renderWorld)
		storage.Spawn(ImguiItem{Render: panels.RenderWorld.Render})
	}
	return panels
}
