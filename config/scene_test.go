package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/config"
	"github.com/plus3/viewcore/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
windows:
  - id: 0
    title: main
    width: 800
    height: 600
images:
  - id: 7
    label: minimap
    width: 256
    height: 128
cameras:
  - name: main
    projection:
      kind: perspective
      fov: 60
      near: 0.5
    transform:
      translation: [0, 2, 10]
      look_at: [0, 0, 0]
  - name: hud
    target: {window: 0}
    projection:
      kind: orthographic
      scaling_mode: fixed_vertical
      depth_calculation: z_difference
    clear:
      color: none
  - name: minimap
    target: {image: 7}
    projection: {kind: orthographic, scaling_mode: none, scale: 2}
    clear:
      color: [0, 0, 0]
      depth: none
`

func TestParseScene(t *testing.T) {
	scene, err := config.Parse([]byte(sceneYAML))
	require.NoError(t, err)
	require.Len(t, scene.Windows, 1)
	require.Len(t, scene.Images, 1)
	require.Len(t, scene.Cameras, 3)

	t.Run("perspective", func(t *testing.T) {
		spec := scene.Cameras[0]
		components, err := spec.Components()
		require.NoError(t, err)
		require.Len(t, components, 3)

		projection, ok := components[1].(camera.PerspectiveProjection)
		require.True(t, ok)
		assert.InDelta(t, mgl32.DegToRad(60), projection.Fov, 1e-6)
		assert.Equal(t, float32(0.5), projection.NearPlane)
		assert.Equal(t, float32(1000), projection.FarPlane, "unset fields keep defaults")

		cam := spec.Camera()
		assert.Equal(t, "main", cam.Name)
		assert.Equal(t, camera.RenderTarget{}, cam.Target)
		assert.Equal(t, camera.DefaultClearSpec(), cam.Clear)

		g := spec.Transform.GlobalTransform()
		assert.Equal(t, mgl32.Vec3{0, 2, 10}, g.Translation)
		forward := g.Forward()
		expected := mgl32.Vec3{0, -2, -10}.Normalize()
		assert.InDelta(t, expected.X(), forward.X(), 1e-5)
		assert.InDelta(t, expected.Y(), forward.Y(), 1e-5)
		assert.InDelta(t, expected.Z(), forward.Z(), 1e-5)
	})

	t.Run("orthographic", func(t *testing.T) {
		spec := scene.Cameras[1]
		built, err := spec.Projection.Build()
		require.NoError(t, err)
		projection := built.(camera.OrthographicProjection)
		assert.Equal(t, camera.ScalingFixedVertical, projection.ScalingMode)
		assert.Equal(t, camera.ZDifference, projection.Depth)
		assert.Equal(t, camera.WindowTarget(window.PrimaryWindow), spec.Target.RenderTarget())

		ops := spec.Clear.ClearSpec()
		assert.False(t, ops.Color.IsClear())
		assert.True(t, ops.Depth.IsClear())
	})

	t.Run("image target and clear values", func(t *testing.T) {
		spec := scene.Cameras[2]
		assert.Equal(t, camera.ImageTarget(asset.Handle(7)), spec.Target.RenderTarget())

		built, err := spec.Projection.Build()
		require.NoError(t, err)
		assert.Equal(t, float32(2), built.(camera.OrthographicProjection).Scale)

		ops := spec.Clear.ClearSpec()
		color, ok := ops.Color.Value()
		require.True(t, ok)
		assert.Equal(t, gputypes.Color{R: 0, G: 0, B: 0, A: 1}, color, "alpha defaults to 1")
		assert.False(t, ops.Depth.IsClear())
	})
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		target error
	}{
		{
			name:   "unknown projection",
			yaml:   "cameras: [{name: a, projection: {kind: fisheye}}]",
			target: config.ErrUnknownProjection,
		},
		{
			name:   "unnamed camera",
			yaml:   "cameras: [{projection: {kind: perspective}}]",
			target: config.ErrUnnamedCamera,
		},
		{
			name:   "duplicate camera",
			yaml:   "cameras: [{name: a}, {name: a}]",
			target: config.ErrDuplicateCamera,
		},
		{
			name:   "ambiguous target",
			yaml:   "cameras: [{name: a, target: {window: 0, image: 1}}]",
			target: config.ErrAmbiguousTarget,
		},
		{
			name:   "zero image id",
			yaml:   "images: [{label: x, width: 1, height: 1}]",
			target: config.ErrInvalidImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("bad clear color", func(t *testing.T) {
		_, err := config.Parse([]byte("cameras: [{name: a, clear: {color: [1, 2]}}]"))
		assert.ErrorContains(t, err, "3 or 4 components")

		_, err = config.Parse([]byte("cameras: [{name: a, clear: {color: blue}}]"))
		assert.Error(t, err)
	})

	t.Run("bad scaling mode", func(t *testing.T) {
		_, err := config.Parse([]byte("cameras: [{name: a, projection: {kind: orthographic, scaling_mode: stretch}}]"))
		assert.ErrorContains(t, err, "stretch")
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))

	scene, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, scene.Cameras, 3)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
