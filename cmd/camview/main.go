// Command camview opens a desktop window with a camera scene and the debug
// panels on top. The window is the primary render target; resizing it or
// editing the scene file updates the cameras live. The window background is
// the clear color of the last clear pass recorded for it.
package main

import (
	"flag"
	"image/color"
	"log"
	"log/slog"
	"os"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/config"
	"github.com/plus3/viewcore/corepipeline"
	"github.com/plus3/viewcore/debugui"
	debugui_ebiten "github.com/plus3/viewcore/debugui/ebiten"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
	"github.com/plus3/viewcore/window"
)

// frameSystem runs after the projection systems: it applies scene edits for
// the next frame and records this frame's clear passes.
type frameSystem struct {
	live     *config.Live
	watcher  *config.Watcher
	pipeline *corepipeline.Pipeline
	rc       *render.RecordingContext
}

func (s *frameSystem) Execute(frame *ecs.UpdateFrame) {
	if s.watcher != nil {
		select {
		case path, ok := <-s.watcher.Events:
			if ok {
				// Structural changes wait for the end of the frame.
				frame.Commands.Defer(func() { _, _ = s.live.Reload(path) })
			}
		default:
		}
	}

	s.rc.Reset()
	if _, err := s.pipeline.Frame(s.rc); err != nil {
		viewcore.Logger().Warn("camview: frame failed", "err", err)
	}
}

// background returns the color the primary window was last cleared to.
func (s *frameSystem) background() (color.Color, bool) {
	primary := camera.RenderTarget{}.String()
	for _, pass := range s.rc.Passes() {
		for _, attachment := range pass.ColorAttachments {
			if render.ViewLabel(attachment.View) != primary {
				continue
			}
			if c, ok := attachment.Ops.Load.ClearValue(); ok {
				return color.NRGBA{R: byteOf(c.R), G: byteOf(c.G), B: byteOf(c.B), A: byteOf(c.A)}, true
			}
		}
	}
	return nil, false
}

func byteOf(v float64) uint8 {
	return uint8(min(max(v, 0), 1) * 255)
}

func main() {
	scenePath := flag.String("scene", "", "Scene YAML file to load and watch.")
	verbose := flag.Bool("v", false, "Log debug output to stderr.")
	flag.Parse()

	if *verbose {
		viewcore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow("camview", 1280, 720)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	host := window.Setup(scheduler)
	storage.AddSingleton(asset.NewImages())
	host.Create(window.Window{Id: window.PrimaryWindow, Title: "camview", PhysicalWidth: 1280, PhysicalHeight: 720, ScaleFactor: 1})

	scene := &config.Scene{}
	if *scenePath != "" {
		var err error
		if scene, err = config.Load(*scenePath); err != nil {
			log.Fatal(err)
		}
	}
	live, err := config.Spawn(scene, storage, host, ecs.GetSingleton[asset.Images](storage))
	if err != nil {
		log.Fatal(err)
	}
	if len(scene.Cameras) == 0 {
		camera.NewPerspectiveBundle(camera.Camera3D).Spawn(storage)
	}

	pipeline, err := corepipeline.NewPipeline(storage, render.NewLabeledViews())
	if err != nil {
		log.Fatal(err)
	}
	frames := &frameSystem{live: live, pipeline: pipeline, rc: render.NewRecordingContext()}
	if *scenePath != "" {
		if frames.watcher, err = config.NewWatcher(*scenePath); err != nil {
			log.Fatal(err)
		}
		defer frames.watcher.Close()
	}

	scheduler.Register(&camera.PerspectiveSystem{})
	scheduler.Register(&camera.OrthographicSystem{})
	scheduler.Register(frames)
	scheduler.Register(&debugui.ImguiSystem{})
	debugui.Spawn(storage, scheduler, pipeline.World, 120)

	game := &debugui_ebiten.Game{
		Backend:   &debugui_ebiten.ImguiBackend{EbitenBackend: backend},
		Scheduler: scheduler,
		Host:      host,
		Window:    window.PrimaryWindow,
		DrawWorld: func(screen *ebiten.Image) {
			if bg, ok := frames.background(); ok {
				screen.Fill(bg)
			}
		},
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
