package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/transform"
)

// ExtractedCamera is the render-world copy of a camera.
type ExtractedCamera struct {
	Name           string
	Target         camera.RenderTarget
	PhysicalWidth  uint32
	PhysicalHeight uint32
	Clear          camera.ClearSpec
}

// ExtractedView is the render-world view of a camera: what it sees and at what size.
type ExtractedView struct {
	Projection mgl32.Mat4
	Transform  transform.GlobalTransform
	Width      uint32
	Height     uint32
}

// ViewTarget is the color texture a view renders into. When Sampled is set the
// view renders into it and resolves into View.
type ViewTarget struct {
	View    hal.TextureView
	Sampled hal.TextureView
}

// ColorAttachment returns the attachment that renders into this target with ops.
func (t *ViewTarget) ColorAttachment(ops Operations[gputypes.Color]) RenderPassColorAttachment {
	if t.Sampled != nil {
		return RenderPassColorAttachment{View: t.Sampled, ResolveTarget: t.View, Ops: ops}
	}
	return RenderPassColorAttachment{View: t.View, Ops: ops}
}

// ViewDepthTexture is the depth texture of a view.
type ViewDepthTexture struct {
	View hal.TextureView
}

// RegisterComponents registers the render-world components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ExtractedCamera](registry)
	ecs.RegisterComponent[ExtractedView](registry)
	ecs.RegisterComponent[ViewTarget](registry)
	ecs.RegisterComponent[ViewDepthTexture](registry)
}
