package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/window"
)

// CameraRow is one camera as shown by the inspector.
type CameraRow struct {
	Entity     ecs.EntityId
	Name       string
	Target     string
	Size       string
	Projection string
	Depth      string
	Near       float32
	Far        float32
	Clear      string
}

type cameraItem struct {
	Camera       *camera.Camera
	Perspective  *camera.PerspectiveProjection  `ecs:"optional"`
	Orthographic *camera.OrthographicProjection `ecs:"optional"`
}

// CameraInspector lists every camera and lets the selected camera's
// projection be edited. Edits go through ecs.WriteComponent, so the
// projection system recomputes the matrix on the next frame.
type CameraInspector struct {
	storage  *ecs.Storage
	view     *ecs.View[cameraItem]
	selected ecs.EntityId
}

func NewCameraInspector(storage *ecs.Storage) *CameraInspector {
	return &CameraInspector{storage: storage, view: ecs.NewView[cameraItem](storage)}
}

// Select makes id the camera shown in the detail pane.
func (ci *CameraInspector) Select(id ecs.EntityId) {
	ci.selected = id
}

// Selected returns the selected camera, if any.
func (ci *CameraInspector) Selected() (ecs.EntityId, bool) {
	return ci.selected, ci.selected != 0 && ci.view.Get(ci.selected) != nil
}

// Rows snapshots every camera in archetype order.
func (ci *CameraInspector) Rows() []CameraRow {
	targets := camera.Targets{
		Windows: ecs.GetSingleton[window.Windows](ci.storage),
		Images:  ecs.GetSingleton[asset.Images](ci.storage),
	}

	var rows []CameraRow
	for id, item := range ci.view.Iter() {
		cam := item.Camera
		size := "unresolved"
		if w, h, ok := cam.PhysicalSize(targets); ok {
			size = fmt.Sprintf("%dx%d", w, h)
		}
		rows = append(rows, CameraRow{
			Entity:     id,
			Name:       cam.Name,
			Target:     cam.Target.String(),
			Size:       size,
			Projection: projectionKind(item),
			Depth:      cam.DepthCalculation.String(),
			Near:       cam.Near,
			Far:        cam.Far,
			Clear:      clearSummary(cam.Clear),
		})
	}
	return rows
}

func projectionKind(item cameraItem) string {
	switch {
	case item.Perspective != nil:
		return "perspective"
	case item.Orthographic != nil:
		return "orthographic"
	}
	return "none"
}

func clearSummary(spec camera.ClearSpec) string {
	switch color, depth := spec.Color.IsClear(), spec.Depth.IsClear(); {
	case color && depth:
		return "color+depth"
	case color:
		return "color"
	case depth:
		return "depth"
	}
	return "none"
}

// SetFov sets the selected camera's perspective field of view in degrees.
// It returns false if the selection has no perspective projection.
func (ci *CameraInspector) SetFov(degrees float32) bool {
	id, ok := ci.Selected()
	if !ok {
		return false
	}
	projection := ecs.WriteComponent[camera.PerspectiveProjection](ci.storage, id)
	if projection == nil {
		return false
	}
	projection.Fov = mgl32.DegToRad(degrees)
	return true
}

// SetScale sets the selected camera's orthographic scale.
// It returns false if the selection has no orthographic projection.
func (ci *CameraInspector) SetScale(scale float32) bool {
	id, ok := ci.Selected()
	if !ok || !ci.storage.HasComponent(id, reflect.TypeFor[camera.OrthographicProjection]()) {
		return false
	}
	ecs.WriteComponent[camera.OrthographicProjection](ci.storage, id).Scale = scale
	return true
}

func (ci *CameraInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 360), imgui.CondOnce)
	if !imgui.BeginV("Cameras", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := ci.Rows()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CameraTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Target")
		imgui.TableSetupColumn("Size")
		imgui.TableSetupColumn("Projection")
		imgui.TableSetupColumn("Clear")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			label := row.Name
			if label == "" {
				label = row.Entity.String()
			}
			if imgui.SelectableBoolV(label, ci.selected == row.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ci.selected = row.Entity
			}
			imgui.TableNextColumn()
			imgui.Text(row.Target)
			imgui.TableNextColumn()
			imgui.Text(row.Size)
			imgui.TableNextColumn()
			imgui.Text(row.Projection)
			imgui.TableNextColumn()
			imgui.Text(row.Clear)
		}
		imgui.EndTable()
	}

	ci.renderSelected()
	imgui.End()
}

func (ci *CameraInspector) renderSelected() {
	id, ok := ci.Selected()
	if !ok {
		imgui.Text("No camera selected")
		return
	}
	item := ci.view.Get(id)

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Depth: %s  near %.3f  far %.1f",
		item.Camera.DepthCalculation, item.Camera.Near, item.Camera.Far))

	switch {
	case item.Perspective != nil:
		fov := mgl32.RadToDeg(item.Perspective.Fov)
		if imgui.InputFloat("fov (deg)", &fov) {
			ci.SetFov(fov)
		}
	case item.Orthographic != nil:
		scale := item.Orthographic.Scale
		if imgui.InputFloat("scale", &scale) {
			ci.SetScale(scale)
		}
	}

	if imgui.TreeNodeStr("Projection matrix") {
		m := item.Camera.ProjectionMatrix
		for row := range 4 {
			imgui.Text(fmt.Sprintf("%8.3f %8.3f %8.3f %8.3f", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3)))
		}
		imgui.TreePop()
	}
}
