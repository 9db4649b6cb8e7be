// Command camtty runs a camera scene in the terminal. The terminal is the
// primary window; resizing it resizes every camera targeting it. Each frame
// lists the cameras with their projection terms and the clear passes the
// frame recorded. Edits to the scene file are applied while it runs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/config"
	"github.com/plus3/viewcore/corepipeline"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
	"github.com/plus3/viewcore/window"
	"github.com/plus3/viewcore/window/termwindow"
)

const defaultScene = `
images:
  - {id: 1, label: minimap, width: 256, height: 256}
cameras:
  - name: camera_3d
    projection: {kind: perspective, fov: 45}
    transform: {translation: [0, 4, 12], look_at: [0, 0, 0]}
  - name: camera_2d
    projection: {kind: orthographic, depth_calculation: z_difference}
    transform: {translation: [0, 0, 999.9]}
    clear: {color: none}
  - name: minimap
    target: {image: 1}
    projection: {kind: orthographic, scaling_mode: fixed_vertical}
    clear: {color: [0, 0, 0, 1]}
`

func main() {
	scenePath := flag.String("scene", "", "Scene YAML file. Empty runs a built-in scene.")
	frames := flag.Int("frames", 0, "Stop after this many frames. 0 runs until q, Esc or Ctrl-C.")
	interval := flag.Duration("interval", 100*time.Millisecond, "Time between frames.")
	headless := flag.Bool("headless", false, "Use a simulated 80x24 screen and print the last frame to stdout.")
	verbose := flag.Bool("v", false, "Log debug output to stderr.")
	flag.Parse()

	if *verbose {
		viewcore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(*scenePath, *frames, *interval, *headless); err != nil {
		log.Fatal(err)
	}
}

func run(scenePath string, frames int, interval time.Duration, headless bool) error {
	screen, err := newScreen(headless)
	if err != nil {
		return err
	}
	defer screen.Fini()

	app, err := newApp(screen, scenePath)
	if err != nil {
		return err
	}
	defer app.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for frame := 1; frames == 0 || frame <= frames; frame++ {
		if !app.term.Pump() {
			break
		}
		if err := app.Frame(frame); err != nil {
			return err
		}
		<-ticker.C
	}

	if headless {
		for _, line := range app.lines {
			fmt.Println(line.Text)
		}
	}
	return nil
}

func newScreen(headless bool) (tcell.Screen, error) {
	if headless {
		sim := tcell.NewSimulationScreen("UTF-8")
		if err := sim.Init(); err != nil {
			return nil, err
		}
		sim.SetSize(80, 24)
		return sim, nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

type app struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	term      *termwindow.Window
	live      *config.Live
	watcher   *config.Watcher
	pipeline  *corepipeline.Pipeline
	rc        *render.RecordingContext
	lines     []termwindow.Line
	status    string
}

func newApp(screen tcell.Screen, scenePath string) (*app, error) {
	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	host := window.Setup(scheduler)
	storage.AddSingleton(asset.NewImages())

	scheduler.Register(&camera.PerspectiveSystem{})
	scheduler.Register(&camera.OrthographicSystem{})

	term := termwindow.New(screen, host, window.PrimaryWindow, "camtty")
	term.Start()

	scene, err := loadScene(scenePath)
	if err != nil {
		return nil, err
	}
	live, err := config.Spawn(scene, storage, host, ecs.GetSingleton[asset.Images](storage))
	if err != nil {
		return nil, err
	}

	pipeline, err := corepipeline.NewPipeline(storage, render.NewLabeledViews())
	if err != nil {
		return nil, err
	}

	a := &app{
		storage:   storage,
		scheduler: scheduler,
		term:      term,
		live:      live,
		pipeline:  pipeline,
		rc:        render.NewRecordingContext(),
	}
	if scenePath != "" {
		if a.watcher, err = config.NewWatcher(scenePath); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func loadScene(path string) (*config.Scene, error) {
	if path == "" {
		return config.Parse([]byte(defaultScene))
	}
	return config.Load(path)
}

func (a *app) Close() {
	a.term.Stop()
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

// Frame applies pending scene edits, runs the systems, records the clear
// passes and redraws the terminal.
func (a *app) Frame(frame int) error {
	a.reload()
	a.scheduler.Once(1.0 / 60.0)

	a.rc.Reset()
	if _, err := a.pipeline.Frame(a.rc); err != nil {
		var nodeErr *render.NodeRunError
		if !errors.As(err, &nodeErr) {
			return err
		}
		a.status = err.Error()
	}

	a.lines = a.describe(frame)
	a.term.Draw(a.lines)
	return nil
}

func (a *app) reload() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if stats, err := a.live.Reload(path); err != nil {
				a.status = err.Error()
			} else {
				a.status = fmt.Sprintf("reloaded: +%d ~%d -%d", stats.Spawned, stats.Updated, stats.Removed)
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			a.status = err.Error()
		default:
			return
		}
	}
}
