package render

import (
	"github.com/gogpu/wgpu/hal"
	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/transform"
	"github.com/plus3/viewcore/window"
)

// ViewResolver hands out the GPU views behind render targets. Either method
// may report false, in which case the extracted camera has no such view.
type ViewResolver interface {
	ColorView(target camera.RenderTarget) (hal.TextureView, bool)
	DepthView(target camera.RenderTarget, width, height uint32) (hal.TextureView, bool)
}

type extractable struct {
	Camera    *camera.Camera
	Transform *transform.GlobalTransform
}

// Extractor copies camera state from the main world into the render world
// once per frame. The render world is cleared first, so it only ever holds the
// current frame's views.
type Extractor struct {
	main     *ecs.Storage
	render   *ecs.Storage
	resolver ViewResolver
	cameras  *ecs.View[extractable]
}

// NewExtractor binds main and render worlds. resolver may be nil, in which
// case no camera gets a ViewTarget or ViewDepthTexture.
func NewExtractor(main, render *ecs.Storage, resolver ViewResolver) *Extractor {
	return &Extractor{
		main:     main,
		render:   render,
		resolver: resolver,
		cameras:  ecs.NewView[extractable](main),
	}
}

// Extract rebuilds the render world and returns the number of cameras extracted.
// Cameras whose target has no size are left out.
func (e *Extractor) Extract() int {
	e.render.Clear()
	e.render.AdvanceTick()

	targets := camera.Targets{
		Windows: ecs.GetSingleton[window.Windows](e.main),
		Images:  ecs.GetSingleton[asset.Images](e.main),
	}

	extracted := 0
	for _, item := range e.cameras.Iter() {
		cam := item.Camera
		width, height, ok := cam.PhysicalSize(targets)
		if !ok {
			viewcore.Logger().Debug("camera target has no size, not extracted",
				"camera", cam.Name, "target", cam.Target)
			continue
		}

		components := []any{
			ExtractedCamera{
				Name:           cam.Name,
				Target:         cam.Target,
				PhysicalWidth:  width,
				PhysicalHeight: height,
				Clear:          cam.Clear,
			},
			ExtractedView{
				Projection: cam.ProjectionMatrix,
				Transform:  *item.Transform,
				Width:      width,
				Height:     height,
			},
		}
		if e.resolver != nil {
			if view, ok := e.resolver.ColorView(cam.Target); ok {
				components = append(components, ViewTarget{View: view})
			}
			if view, ok := e.resolver.DepthView(cam.Target, width, height); ok {
				components = append(components, ViewDepthTexture{View: view})
			}
		}

		e.render.Spawn(components...)
		extracted++
	}
	return extracted
}
