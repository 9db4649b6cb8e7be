// Command camstress spawns many cameras over a few windows and offscreen
// images, resizes windows at random, and reports how long projection updates
// and clear-pass recording take per frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/corepipeline"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
	"github.com/plus3/viewcore/window"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	cameraCount := flag.Int("cameras", 1000, "The number of cameras to spawn.")
	windowCount := flag.Int("windows", 4, "The number of windows cameras are spread over.")
	imageCount := flag.Int("images", 4, "The number of offscreen images cameras are spread over.")
	resizeRate := flag.Float64("resize-rate", 0.1, "Chance per frame that a random window is resized.")
	seed := flag.Int64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	log.Println("Starting camera stress test...")

	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	host := window.Setup(scheduler)
	storage.AddSingleton(asset.NewImages())
	images := ecs.GetSingleton[asset.Images](storage)

	perspective := &camera.PerspectiveSystem{}
	ortho := &camera.OrthographicSystem{}
	scheduler.Register(perspective)
	scheduler.Register(ortho)

	targets := spawnTargets(rng, host, images, *windowCount, *imageCount)
	if len(targets) == 0 {
		log.Fatal("Need at least one window or image.")
	}
	log.Printf("Spawning %d cameras over %d targets...\n", *cameraCount, len(targets))
	for i := range *cameraCount {
		spawnCamera(rng, storage, fmt.Sprintf("cam-%d", i), targets[rng.Intn(len(targets))])
	}

	pipeline, err := corepipeline.NewPipeline(storage, render.NewLabeledViews())
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}
	rc := render.NewRecordingContext()

	report := &Report{
		Duration:       *duration,
		Cameras:        *cameraCount,
		Windows:        *windowCount,
		Images:         *imageCount,
		ResizeRate:     *resizeRate,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		if rng.Float64() < *resizeRate && resizeRandomTarget(rng, host) {
			report.Resizes++
		}

		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		updateStart := time.Now()
		scheduler.Once(deltaTime.Seconds())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.Recomputed += int64(perspective.Recomputed + ortho.Recomputed)

		renderStart := time.Now()
		rc.Reset()
		if _, err := pipeline.Frame(rc); err != nil {
			log.Fatalf("Frame failed: %v", err)
		}
		report.RenderTime.Samples = append(report.RenderTime.Samples, time.Since(renderStart))
		report.Passes += int64(len(rc.Passes()))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.RenderTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Camera Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func spawnTargets(rng *rand.Rand, host *window.Host, images *asset.Images, windows, imageCount int) []camera.RenderTarget {
	var targets []camera.RenderTarget
	for i := range windows {
		id := window.WindowId(i)
		host.Create(window.Window{
			Id:             id,
			Title:          id.String(),
			PhysicalWidth:  uint32(640 + rng.Intn(1280)),
			PhysicalHeight: uint32(480 + rng.Intn(720)),
			ScaleFactor:    float64(1 + rng.Intn(2)),
		})
		targets = append(targets, camera.WindowTarget(id))
	}
	for i := range imageCount {
		handle := images.Add(asset.NewRenderImage(fmt.Sprintf("offscreen-%d", i), 256, 256))
		targets = append(targets, camera.ImageTarget(handle))
	}
	return targets
}

func spawnCamera(rng *rand.Rand, storage *ecs.Storage, name string, target camera.RenderTarget) {
	if rng.Intn(2) == 0 {
		bundle := camera.NewPerspectiveBundle(name)
		bundle.Camera.Target = target
		bundle.Projection.Fov = 0.5 + rng.Float32()
		bundle.Spawn(storage)
		return
	}
	bundle := camera.New2DBundle(name, 1000)
	bundle.Camera.Target = target
	bundle.Projection.ScalingMode = camera.ScalingMode(rng.Intn(4))
	if rng.Intn(3) == 0 {
		bundle.Camera.Clear = camera.OverlayClearSpec()
	}
	bundle.Spawn(storage)
}

func resizeRandomTarget(rng *rand.Rand, host *window.Host) bool {
	ids := host.Windows.Ids()
	if len(ids) == 0 {
		return false
	}
	id := ids[rng.Intn(len(ids))]
	return host.Resize(id, uint32(64+rng.Intn(1920)), uint32(64+rng.Intn(1080)))
}
