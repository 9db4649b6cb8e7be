// Package ebiten runs a scheduler inside ebiten's game loop with the debug
// panels drawn on top, and feeds ebiten's layout into the window registry.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/window"
)

// ImguiBackend wraps the ebiten Dear ImGui backend so it can be stored as a
// singleton.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game. Each tick runs one scheduler frame between
// the ImGui frame markers; each layout is reported to Host for Window.
type Game struct {
	Backend   *ImguiBackend
	Scheduler *ecs.Scheduler
	Host      *window.Host
	Window    window.WindowId

	// DrawWorld draws under the overlay. Optional.
	DrawWorld func(screen *ebiten.Image)
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	g.Backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawWorld != nil {
		g.DrawWorld(screen)
	}
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	g.Host.Layout(g.Window, outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
	return outsideWidth, outsideHeight
}
