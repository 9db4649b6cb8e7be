package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/config"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editedSceneYAML = `
windows:
  - {id: 0, title: main, width: 800, height: 600}
images:
  - {id: 7, label: minimap, width: 256, height: 128}
cameras:
  - name: main
    projection: {kind: perspective, fov: 90, near: 0.5}
  - name: minimap
    target: {image: 7}
    projection: {kind: perspective}
  - name: overlay
    projection: {kind: orthographic}
    clear: {color: none, depth: none}
`

type world struct {
	storage     *ecs.Storage
	scheduler   *ecs.Scheduler
	host        *window.Host
	images      *asset.Images
	perspective *camera.PerspectiveSystem
	ortho       *camera.OrthographicSystem
}

func newWorld() *world {
	registry := ecs.NewComponentRegistry()
	camera.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	storage.AddSingleton(asset.NewImages())

	w := &world{
		storage:     storage,
		scheduler:   scheduler,
		host:        window.Setup(scheduler),
		images:      ecs.GetSingleton[asset.Images](storage),
		perspective: &camera.PerspectiveSystem{},
		ortho:       &camera.OrthographicSystem{},
	}
	scheduler.Register(w.perspective)
	scheduler.Register(w.ortho)
	return w
}

func spawnScene(t *testing.T, w *world, source string) *config.Live {
	t.Helper()
	scene, err := config.Parse([]byte(source))
	require.NoError(t, err)
	live, err := config.Spawn(scene, w.storage, w.host, w.images)
	require.NoError(t, err)
	return live
}

func entity(t *testing.T, live *config.Live, name string) ecs.EntityId {
	t.Helper()
	id, ok := live.Entity(name)
	require.True(t, ok, "camera %q", name)
	return id
}

func TestSpawnScene(t *testing.T) {
	w := newWorld()
	live := spawnScene(t, w, sceneYAML)
	assert.Equal(t, []string{"hud", "main", "minimap"}, live.Names())

	win, ok := w.host.Windows.Get(window.PrimaryWindow)
	require.True(t, ok)
	assert.Equal(t, "main", win.Title)
	img, ok := w.images.Get(asset.Handle(7))
	require.True(t, ok)
	assert.Equal(t, uint32(256), img.Size.Width)

	w.scheduler.Once(0.016)
	assert.Equal(t, 1, w.perspective.Recomputed)
	assert.Equal(t, 2, w.ortho.Recomputed)

	main := entity(t, live, "main")
	projection := ecs.ReadComponent[camera.PerspectiveProjection](w.storage, main)
	assert.InDelta(t, 800.0/600.0, projection.AspectRatio, 1e-6)
	cam := ecs.ReadComponent[camera.Camera](w.storage, main)
	assert.Equal(t, projection.ProjectionMatrix(), cam.ProjectionMatrix)
	assert.Equal(t, float32(0.5), cam.Near)

	hud := ecs.ReadComponent[camera.Camera](w.storage, entity(t, live, "hud"))
	assert.Equal(t, camera.ZDifference, hud.DepthCalculation)

	minimap := ecs.ReadComponent[camera.OrthographicProjection](w.storage, entity(t, live, "minimap"))
	assert.Equal(t, float32(-1), minimap.Left, "scaling none keeps the extents")
}

func TestApplyEditedScene(t *testing.T) {
	w := newWorld()
	live := spawnScene(t, w, sceneYAML)
	w.scheduler.Once(0.016)

	edited, err := config.Parse([]byte(editedSceneYAML))
	require.NoError(t, err)
	stats, err := live.Apply(edited)
	require.NoError(t, err)
	assert.Equal(t, config.ApplyStats{Spawned: 1, Updated: 2, Removed: 1}, stats)
	assert.Equal(t, []string{"main", "minimap", "overlay"}, live.Names())

	w.scheduler.Once(0.016)
	assert.Equal(t, 2, w.perspective.Recomputed, "main was rewritten and minimap switched kind")
	assert.Equal(t, 1, w.ortho.Recomputed, "overlay was added")

	main := entity(t, live, "main")
	projection := ecs.ReadComponent[camera.PerspectiveProjection](w.storage, main)
	assert.InDelta(t, mgl32.DegToRad(90), projection.Fov, 1e-6)
	assert.Equal(t, projection.ProjectionMatrix(), ecs.ReadComponent[camera.Camera](w.storage, main).ProjectionMatrix)

	minimap := entity(t, live, "minimap")
	assert.False(t, w.storage.HasComponent(minimap, reflect.TypeFor[camera.OrthographicProjection]()))
	switched := ecs.ReadComponent[camera.PerspectiveProjection](w.storage, minimap)
	require.NotNil(t, switched)
	assert.InDelta(t, 2.0, switched.AspectRatio, 1e-6)
	assert.Equal(t, camera.DefaultClearSpec(), ecs.ReadComponent[camera.Camera](w.storage, minimap).Clear)

	_, ok := live.Entity("hud")
	assert.False(t, ok)
}

func TestApplyUnchangedSceneRecomputes(t *testing.T) {
	w := newWorld()
	live := spawnScene(t, w, sceneYAML)
	w.scheduler.Once(0.016)
	w.scheduler.Once(0.016)
	assert.Zero(t, w.perspective.Recomputed)

	scene, err := config.Parse([]byte(sceneYAML))
	require.NoError(t, err)
	stats, err := live.Apply(scene)
	require.NoError(t, err)
	assert.Equal(t, config.ApplyStats{Updated: 3}, stats)

	w.scheduler.Once(0.016)
	assert.Equal(t, 1, w.perspective.Recomputed)
	assert.Equal(t, 2, w.ortho.Recomputed)
}

func TestApplyResizesWindows(t *testing.T) {
	w := newWorld()
	live := spawnScene(t, w, sceneYAML)
	w.scheduler.Once(0.016)

	scene, err := config.Parse([]byte(sceneYAML))
	require.NoError(t, err)
	scene.Windows[0].Width = 1200
	_, err = live.Apply(scene)
	require.NoError(t, err)

	win, _ := w.host.Windows.Get(window.PrimaryWindow)
	assert.Equal(t, uint32(1200), win.PhysicalWidth)

	w.scheduler.Once(0.016)
	projection := ecs.ReadComponent[camera.PerspectiveProjection](w.storage, entity(t, live, "main"))
	assert.InDelta(t, 2.0, projection.AspectRatio, 1e-6)
}

func TestReloadKeepsWorldOnError(t *testing.T) {
	w := newWorld()
	live := spawnScene(t, w, sceneYAML)
	w.scheduler.Once(0.016)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cameras: [{name: main, projection: {kind: fisheye}}]"), 0o644))

	stats, err := live.Reload(path)
	assert.ErrorIs(t, err, config.ErrUnknownProjection)
	assert.Zero(t, stats)
	assert.Equal(t, []string{"hud", "main", "minimap"}, live.Names())

	require.NoError(t, os.WriteFile(path, []byte(editedSceneYAML), 0o644))
	stats, err = live.Reload(path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Removed)
}

func TestEntityTracksDeletedCamera(t *testing.T) {
	w := newWorld()
	live := spawnScene(t, w, sceneYAML)

	w.storage.Delete(entity(t, live, "hud"))
	_, ok := live.Entity("hud")
	assert.False(t, ok)

	scene, err := config.Parse([]byte(sceneYAML))
	require.NoError(t, err)
	stats, err := live.Apply(scene)
	require.NoError(t, err)
	assert.Equal(t, config.ApplyStats{Spawned: 1, Updated: 2}, stats, "a camera deleted elsewhere is respawned")
}
