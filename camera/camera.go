// Package camera holds the camera component, its projections and the system
// that keeps each camera's projection matrix in step with its render target.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/transform"
	"github.com/plus3/viewcore/window"
)

// Camera is the view state attached to a camera entity. ProjectionMatrix,
// DepthCalculation, Near and Far are written by ProjectionSystem from the
// entity's projection component.
type Camera struct {
	ProjectionMatrix mgl32.Mat4
	// Name is empty for unnamed cameras.
	Name             string
	Target           RenderTarget
	DepthCalculation DepthCalculation
	Near             float32
	Far              float32
	Clear            ClearSpec
}

// New returns a camera rendering to target with an identity projection and the
// default clear spec.
func New(name string, target RenderTarget) Camera {
	return Camera{
		ProjectionMatrix: mgl32.Ident4(),
		Name:             name,
		Target:           target,
		Clear:            DefaultClearSpec(),
	}
}

// Window returns the target window id if the camera renders to a window.
func (c *Camera) Window() (window.WindowId, bool) {
	return c.Target.Window()
}

// LogicalSize returns the size of the camera's target in user units.
func (c *Camera) LogicalSize(targets Targets) (mgl32.Vec2, bool) {
	return targets.LogicalSize(c.Target)
}

// PhysicalSize returns the size of the camera's target in device pixels.
func (c *Camera) PhysicalSize(targets Targets) (width, height uint32, ok bool) {
	return targets.PhysicalSize(c.Target)
}

// WorldToScreen maps a world-space point to logical screen coordinates of the
// camera's target, with the origin at the bottom left. It returns false when
// the target size is unknown, the point falls outside the depth range or the
// result is not finite.
func (c *Camera) WorldToScreen(targets Targets, cameraTransform transform.GlobalTransform, world mgl32.Vec3) (mgl32.Vec2, bool) {
	size, ok := c.LogicalSize(targets)
	if !ok {
		return mgl32.Vec2{}, false
	}

	worldToNDC := c.ProjectionMatrix.Mul4(cameraTransform.ComputeMatrix().Inv())
	ndc := mgl32.TransformCoordinate(world, worldToNDC)
	if !(ndc.Z() >= 0 && ndc.Z() <= 1) {
		return mgl32.Vec2{}, false
	}

	screen := mgl32.Vec2{
		(ndc.X() + 1) / 2 * size.X(),
		(ndc.Y() + 1) / 2 * size.Y(),
	}
	if !finite(screen.X()) || !finite(screen.Y()) {
		return mgl32.Vec2{}, false
	}
	return screen, true
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RegisterComponents registers the camera components and the transform they
// are placed with.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[PerspectiveProjection](registry)
	ecs.RegisterComponent[OrthographicProjection](registry)
	ecs.RegisterComponent[transform.GlobalTransform](registry)
}
