package camera

import (
	"reflect"
	"slices"

	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/window"
)

// ProjectionSystem keeps Camera components in step with their projection
// component T. A camera is recomputed when its target window was resized or
// created since the last run, when the camera was just added, or when its T was
// written. The camera's target must resolve to a size; if it does not, the
// camera is left alone until one of those triggers fires again.
//
// Register one ProjectionSystem per projection type:
//
//	scheduler.Register(&camera.ProjectionSystem[camera.PerspectiveProjection, *camera.PerspectiveProjection]{})
type ProjectionSystem[T any, P interface {
	*T
	CameraProjection
}] struct {
	Resized ecs.EventReader[window.WindowResized]
	Created ecs.EventReader[window.WindowCreated]
	Windows ecs.Singleton[window.Windows]
	Images  ecs.Singleton[asset.Images]

	Cameras ecs.Query[struct {
		Camera     *Camera
		Projection *T
	}]

	// Recomputed is the number of cameras recomputed by the last run.
	Recomputed int
}

// PerspectiveSystem updates cameras with a PerspectiveProjection.
type PerspectiveSystem = ProjectionSystem[PerspectiveProjection, *PerspectiveProjection]

// OrthographicSystem updates cameras with an OrthographicProjection.
type OrthographicSystem = ProjectionSystem[OrthographicProjection, *OrthographicProjection]

var cameraType = reflect.TypeFor[Camera]()

func (s *ProjectionSystem[T, P]) Execute(frame *ecs.UpdateFrame) {
	changed := ChangedWindows(s.Resized.Read(), s.Created.Read())

	targets := Targets{Windows: s.Windows.Get(), Images: s.Images.Get()}
	projectionType := reflect.TypeFor[T]()
	s.Recomputed = 0

	for id, item := range s.Cameras.Iter() {
		windowId, isWindow := item.Camera.Window()
		resized := isWindow && slices.Contains(changed, windowId)
		if !resized && !s.Cameras.Added(id, cameraType) && !s.Cameras.Changed(id, projectionType) {
			continue
		}

		size, ok := item.Camera.LogicalSize(targets)
		if !ok {
			viewcore.Logger().Debug("camera target has no size, deferring projection update",
				"camera", item.Camera.Name, "target", item.Camera.Target)
			continue
		}

		projection := P(item.Projection)
		projection.Update(size.X(), size.Y())
		item.Camera.ProjectionMatrix = projection.ProjectionMatrix()
		item.Camera.DepthCalculation = projection.DepthCalculation()
		item.Camera.Near = projection.Near()
		item.Camera.Far = projection.Far()

		frame.Storage.MarkChanged(id, cameraType)
		frame.Storage.MarkChanged(id, projectionType)
		s.Recomputed++
	}
}

// ChangedWindows lists the windows named by resize and creation events. Each
// stream is walked newest first and every window appears once, so a window
// resized many times in one frame is handled once.
func ChangedWindows(resized []window.WindowResized, created []window.WindowCreated) []window.WindowId {
	var ids []window.WindowId
	for i := len(resized) - 1; i >= 0; i-- {
		if !slices.Contains(ids, resized[i].Id) {
			ids = append(ids, resized[i].Id)
		}
	}
	for i := len(created) - 1; i >= 0; i-- {
		if !slices.Contains(ids, created[i].Id) {
			ids = append(ids, created[i].Id)
		}
	}
	return ids
}
