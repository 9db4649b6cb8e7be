package config

import (
	"maps"
	"reflect"
	"slices"

	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/transform"
	"github.com/plus3/viewcore/window"
)

// ApplyStats counts what an Apply did to the cameras.
type ApplyStats struct {
	Spawned int
	Updated int
	Removed int
}

// Live is a scene spawned into storage. Cameras are tracked by name so an
// edited file can be applied to the running world in place.
type Live struct {
	storage *ecs.Storage
	host    *window.Host
	images  *asset.Images
	cameras map[string]*ecs.EntityRef
}

// Spawn creates the scene's windows, images and cameras.
func Spawn(scene *Scene, storage *ecs.Storage, host *window.Host, images *asset.Images) (*Live, error) {
	live := &Live{
		storage: storage,
		host:    host,
		images:  images,
		cameras: make(map[string]*ecs.EntityRef),
	}
	if _, err := live.Apply(scene); err != nil {
		return nil, err
	}
	return live, nil
}

// Entity returns the entity of the named camera.
func (l *Live) Entity(name string) (ecs.EntityId, bool) {
	return l.storage.ResolveEntityRef(l.cameras[name])
}

// Names returns the tracked camera names in sorted order.
func (l *Live) Names() []string {
	return slices.Sorted(maps.Keys(l.cameras))
}

// Reload loads path and applies it. On error the world is left untouched.
func (l *Live) Reload(path string) (ApplyStats, error) {
	scene, err := Load(path)
	if err != nil {
		viewcore.Logger().Warn("config: reload failed", "path", path, "err", err)
		return ApplyStats{}, err
	}
	stats, err := l.Apply(scene)
	if err != nil {
		return stats, err
	}
	viewcore.Logger().Info("config: reload applied", "path", path,
		"spawned", stats.Spawned, "updated", stats.Updated, "removed", stats.Removed)
	return stats, nil
}

// Apply brings storage in line with scene. Windows are created or resized and
// images replaced. Cameras missing from the scene are deleted, new ones are
// spawned and the rest are rewritten. Every rewrite marks the projection
// changed, so its matrix is recomputed on the next frame even when nothing
// in the file moved. Windows absent from the scene are kept; backends own
// their lifetime.
func (l *Live) Apply(scene *Scene) (ApplyStats, error) {
	if err := scene.Validate(); err != nil {
		return ApplyStats{}, err
	}

	for _, spec := range scene.Windows {
		l.applyWindow(spec)
	}
	for _, spec := range scene.Images {
		l.images.Set(asset.Handle(spec.Id), asset.NewRenderImage(spec.Label, spec.Width, spec.Height))
	}

	var stats ApplyStats
	wanted := make(map[string]bool, len(scene.Cameras))
	for _, spec := range scene.Cameras {
		wanted[spec.Name] = true
		components, err := spec.Components()
		if err != nil {
			return stats, err
		}

		id, ok := l.Entity(spec.Name)
		if !ok {
			l.cameras[spec.Name] = l.storage.CreateEntityRef(l.storage.Spawn(components...))
			viewcore.Logger().Debug("config: camera spawned", "camera", spec.Name)
			stats.Spawned++
			continue
		}
		l.updateCamera(id, spec, components[1])
		stats.Updated++
	}

	for _, name := range l.Names() {
		if wanted[name] {
			continue
		}
		if id, ok := l.Entity(name); ok {
			l.storage.Delete(id)
		}
		delete(l.cameras, name)
		viewcore.Logger().Debug("config: camera removed", "camera", name)
		stats.Removed++
	}
	return stats, nil
}

func (l *Live) applyWindow(spec WindowSpec) {
	id := window.WindowId(spec.Id)
	if _, ok := l.host.Windows.Get(id); !ok {
		l.host.Create(window.Window{
			Id:             id,
			Title:          spec.Title,
			PhysicalWidth:  spec.Width,
			PhysicalHeight: spec.Height,
			ScaleFactor:    spec.Scale,
		})
		return
	}
	l.host.Resize(id, spec.Width, spec.Height)
	if spec.Scale > 0 {
		l.host.SetScaleFactor(id, spec.Scale)
	}
}

// updateCamera rewrites an existing camera. The computed matrix and planes
// stay until the projection system replaces them.
func (l *Live) updateCamera(id ecs.EntityId, spec CameraSpec, projection any) {
	if cam := ecs.WriteComponent[camera.Camera](l.storage, id); cam != nil {
		cam.Name = spec.Name
		cam.Target = spec.Target.RenderTarget()
		cam.Clear = spec.Clear.ClearSpec()
	}
	if g := ecs.WriteComponent[transform.GlobalTransform](l.storage, id); g != nil {
		*g = spec.Transform.GlobalTransform()
	}

	// A kind switch moves the entity to another archetype; the ref follows.
	for _, other := range projectionTypes {
		if other != reflect.TypeOf(projection) && l.storage.HasComponent(id, other) {
			id = l.storage.RemoveComponent(id, other)
		}
	}
	l.storage.AddComponent(id, projection)
}

var projectionTypes = []reflect.Type{
	reflect.TypeFor[camera.PerspectiveProjection](),
	reflect.TypeFor[camera.OrthographicProjection](),
}
