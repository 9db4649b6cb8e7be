package camera

import (
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/transform"
)

const (
	// Camera3D and Camera2D are the default names given by the bundle constructors.
	Camera3D = "camera_3d"
	Camera2D = "camera_2d"
)

// PerspectiveBundle is the component set of a 3D camera.
type PerspectiveBundle struct {
	Camera     Camera
	Projection PerspectiveProjection
	Transform  transform.GlobalTransform
}

// NewPerspectiveBundle returns a camera at the origin with the default
// perspective projection, rendering to the primary window.
func NewPerspectiveBundle(name string) PerspectiveBundle {
	return PerspectiveBundle{
		Camera:     New(name, RenderTarget{}),
		Projection: DefaultPerspective(),
		Transform:  transform.Identity(),
	}
}

// Components returns the bundle as arguments for Storage.Spawn or Commands.Spawn.
func (b PerspectiveBundle) Components() []any {
	return []any{b.Camera, b.Projection, b.Transform}
}

// Spawn adds the bundle to storage as a new entity.
func (b PerspectiveBundle) Spawn(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(b.Components()...)
}

// OrthographicBundle is the component set of a 2D camera.
type OrthographicBundle struct {
	Camera     Camera
	Projection OrthographicProjection
	Transform  transform.GlobalTransform
}

// New2DBundle returns an orthographic camera looking down -Z from just inside
// its far plane, so everything between z = 0 and z = far - 0.1 is visible.
// Depth is measured as a Z difference.
func New2DBundle(name string, far float32) OrthographicBundle {
	projection := DefaultOrthographic()
	projection.FarPlane = far
	projection.Depth = ZDifference

	return OrthographicBundle{
		Camera:     New(name, RenderTarget{}),
		Projection: projection,
		Transform:  transform.FromXYZ(0, 0, far-0.1),
	}
}

// Components returns the bundle as arguments for Storage.Spawn or Commands.Spawn.
func (b OrthographicBundle) Components() []any {
	return []any{b.Camera, b.Projection, b.Transform}
}

// Spawn adds the bundle to storage as a new entity.
func (b OrthographicBundle) Spawn(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(b.Components()...)
}
