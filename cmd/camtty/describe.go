package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gputypes"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
	"github.com/plus3/viewcore/window"
	"github.com/plus3/viewcore/window/termwindow"
)

var (
	headerStyle = tcell.StyleDefault.Bold(true)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (a *app) describe(frame int) []termwindow.Line {
	lines := []termwindow.Line{{
		Text:  fmt.Sprintf("frame %d  %s", frame, a.windowSummary()),
		Style: headerStyle,
	}}

	for _, name := range a.live.Names() {
		id, ok := a.live.Entity(name)
		if !ok {
			continue
		}
		cam := ecs.ReadComponent[camera.Camera](a.storage, id)
		m := cam.ProjectionMatrix
		lines = append(lines,
			termwindow.Line{
				Text:  fmt.Sprintf("%-12s %-18s %-12s near %-6g far %g", name, cam.Target, cam.DepthCalculation, cam.Near, cam.Far),
				Style: clearStyle(cam.Clear),
			},
			termwindow.Line{
				Text:  fmt.Sprintf("  m00 %8.4f  m11 %8.4f  m22 %8.4f  m23 %8.4f", m.At(0, 0), m.At(1, 1), m.At(2, 2), m.At(2, 3)),
				Style: dimStyle,
			},
		)
	}

	lines = append(lines, termwindow.Line{Text: fmt.Sprintf("passes: %d", len(a.rc.Passes())), Style: headerStyle})
	for _, pass := range a.rc.Passes() {
		lines = append(lines, termwindow.Line{Text: "  " + render.Describe(pass)})
	}
	if a.status != "" {
		lines = append(lines, termwindow.Line{Text: a.status, Style: dimStyle})
	}
	return lines
}

func (a *app) windowSummary() string {
	windows := ecs.GetSingleton[window.Windows](a.storage)
	win, ok := windows.Get(window.PrimaryWindow)
	if !ok {
		return "no window"
	}
	return fmt.Sprintf("%s %dx%d px", win.Id, win.PhysicalWidth, win.PhysicalHeight)
}

// clearStyle paints a camera's row in its clear color.
func clearStyle(spec camera.ClearSpec) tcell.Style {
	color, ok := spec.Color.Value()
	if !ok {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(toTerm(color))
}

func toTerm(c gputypes.Color) tcell.Color {
	channel := func(v float64) int32 {
		return int32(min(max(v, 0), 1) * 255)
	}
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}
