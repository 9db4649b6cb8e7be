package camera_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/transform"
	"github.com/plus3/viewcore/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTargetVariants(t *testing.T) {
	var zero camera.RenderTarget
	id, ok := zero.Window()
	assert.True(t, ok)
	assert.Equal(t, window.PrimaryWindow, id)
	assert.Equal(t, camera.WindowTarget(window.PrimaryWindow), zero)

	img := camera.ImageTarget(3)
	_, ok = img.Window()
	assert.False(t, ok)
	handle, ok := img.Image()
	assert.True(t, ok)
	assert.Equal(t, asset.Handle(3), handle)
	assert.Equal(t, camera.TargetImage, img.Kind())

	assert.Equal(t, "Window(primary)", zero.String())
	assert.Equal(t, "Image(image#3)", img.String())

	seen := map[camera.RenderTarget]int{}
	seen[camera.WindowTarget(1)]++
	seen[camera.WindowTarget(1)]++
	seen[camera.ImageTarget(1)]++
	assert.Len(t, seen, 2, "window 1 and image 1 are different targets")
}

func TestClearSpec(t *testing.T) {
	spec := camera.DefaultClearSpec()
	color, ok := spec.Color.Value()
	require.True(t, ok)
	assert.Equal(t, gputypes.Color{R: 0.4, G: 0.4, B: 0.4, A: 1}, color)
	depth, ok := spec.Depth.Value()
	require.True(t, ok)
	assert.Equal(t, float32(0), depth)

	overlay := camera.OverlayClearSpec()
	assert.False(t, overlay.Color.IsClear())
	assert.False(t, overlay.Depth.IsClear())
	assert.Equal(t, camera.NoClear[float32](), overlay.Depth)
}

func TestTargetsSizes(t *testing.T) {
	windows := window.NewWindows()
	windows.Add(window.Window{Id: window.PrimaryWindow, PhysicalWidth: 1600, PhysicalHeight: 1200, ScaleFactor: 2})
	images := asset.NewImages()
	handle := images.Add(asset.NewRenderImage("minimap", 256, 128))
	targets := camera.Targets{Windows: windows, Images: images}

	cam := camera.New("main", camera.RenderTarget{})
	size, ok := cam.LogicalSize(targets)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{800, 600}, size)
	w, h, ok := cam.PhysicalSize(targets)
	require.True(t, ok)
	assert.Equal(t, []uint32{1600, 1200}, []uint32{w, h})

	cam.Target = camera.ImageTarget(handle)
	size, ok = cam.LogicalSize(targets)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{256, 128}, size)

	cam.Target = camera.ImageTarget(handle + 1)
	_, ok = cam.LogicalSize(targets)
	assert.False(t, ok)

	cam.Target = camera.WindowTarget(4)
	_, _, ok = cam.PhysicalSize(targets)
	assert.False(t, ok)

	_, ok = camera.Targets{}.LogicalSize(camera.RenderTarget{})
	assert.False(t, ok, "nil registries resolve nothing")
}

func screenTargets() camera.Targets {
	windows := window.NewWindows()
	windows.Add(window.Window{Id: window.PrimaryWindow, PhysicalWidth: 800, PhysicalHeight: 600, ScaleFactor: 1})
	return camera.Targets{Windows: windows}
}

func perspectiveCamera(width, height float32) camera.Camera {
	projection := camera.DefaultPerspective()
	projection.Update(width, height)
	cam := camera.New("main", camera.RenderTarget{})
	cam.ProjectionMatrix = projection.ProjectionMatrix()
	return cam
}

func TestWorldToScreenPerspective(t *testing.T) {
	targets := screenTargets()
	cam := perspectiveCamera(800, 600)
	eye := transform.FromXYZ(0, 0, 5).LookingAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	center, ok := cam.WorldToScreen(targets, eye, mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 400, center.X(), 1e-3)
	assert.InDelta(t, 300, center.Y(), 1e-3)

	upRight, ok := cam.WorldToScreen(targets, eye, mgl32.Vec3{1, 1, 0})
	require.True(t, ok)
	assert.Greater(t, upRight.X(), float32(400))
	assert.Greater(t, upRight.Y(), float32(300), "screen y grows upwards")
	assert.LessOrEqual(t, upRight.X(), float32(800))
	assert.LessOrEqual(t, upRight.Y(), float32(600))

	_, ok = cam.WorldToScreen(targets, eye, mgl32.Vec3{0, 0, 5})
	assert.False(t, ok, "the camera's own position is not visible")

	_, ok = cam.WorldToScreen(targets, eye, mgl32.Vec3{0, 0, 10})
	assert.False(t, ok, "points behind the camera are not visible")

	_, ok = cam.WorldToScreen(camera.Targets{}, eye, mgl32.Vec3{})
	assert.False(t, ok, "unknown target size")
}

func TestWorldToScreenOrthographic(t *testing.T) {
	targets := screenTargets()
	bundle := camera.New2DBundle(camera.Camera2D, 1000)
	bundle.Projection.Update(800, 600)
	bundle.Camera.ProjectionMatrix = bundle.Projection.ProjectionMatrix()

	point, ok := bundle.Camera.WorldToScreen(targets, bundle.Transform, mgl32.Vec3{100, 50, 0})
	require.True(t, ok)
	assert.InDelta(t, 500, point.X(), 1e-2)
	assert.InDelta(t, 350, point.Y(), 1e-2)

	_, ok = bundle.Camera.WorldToScreen(targets, bundle.Transform, mgl32.Vec3{0, 0, 1000})
	assert.False(t, ok, "behind the camera")
	_, ok = bundle.Camera.WorldToScreen(targets, bundle.Transform, mgl32.Vec3{0, 0, -10})
	assert.False(t, ok, "beyond the far plane")
}

func TestBundles(t *testing.T) {
	persp := camera.NewPerspectiveBundle(camera.Camera3D)
	assert.Equal(t, "camera_3d", persp.Camera.Name)
	assert.True(t, persp.Camera.ProjectionMatrix.ApproxEqual(mgl32.Ident4()))
	assert.Len(t, persp.Components(), 3)

	flat := camera.New2DBundle(camera.Camera2D, 500)
	assert.InDelta(t, 499.9, flat.Transform.Translation.Z(), 1e-4)
	assert.Equal(t, camera.ZDifference, flat.Projection.DepthCalculation())
	assert.Equal(t, float32(500), flat.Projection.Far())
}
