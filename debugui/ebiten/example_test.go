package ebiten_test

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/debugui"
	debugui_ebiten "github.com/plus3/viewcore/debugui/ebiten"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/window"
)

func Example() {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("cameras", 1280, 720)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	host := window.Setup(scheduler)
	host.Create(window.Window{Id: window.PrimaryWindow, Title: "cameras", PhysicalWidth: 1280, PhysicalHeight: 720, ScaleFactor: 1})
	camera.NewPerspectiveBundle(camera.Camera3D).Spawn(storage)

	scheduler.Register(&camera.PerspectiveSystem{})
	scheduler.Register(&debugui.ImguiSystem{})
	debugui.Spawn(storage, scheduler, nil, 120)

	game := &debugui_ebiten.Game{
		Backend:   &debugui_ebiten.ImguiBackend{EbitenBackend: backend},
		Scheduler: scheduler,
		Host:      host,
		Window:    window.PrimaryWindow,
	}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
