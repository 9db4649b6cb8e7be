package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
)

const (
	ColumnArchetypeId = iota
	ColumnComponents
	ColumnComponentCount
	ColumnEntityCount
)

// ArchetypeRow is one archetype as listed by ArchetypeViewer.
type ArchetypeRow struct {
	Id         uint32
	Components []string
	Entities   int
}

// EntityRow is one entity of the selected archetype. Label is the camera
// name when the entity is a camera or an extracted camera.
type EntityRow struct {
	Id    ecs.EntityId
	Label string
}

// ArchetypeViewer lists the archetypes of one world with their entity counts,
// and the entities of the selected archetype. Pointed at a pipeline's render
// world it shows which extracted cameras carry a ViewTarget or a
// ViewDepthTexture, and so which passes the clear node will begin.
type ArchetypeViewer struct {
	Title string

	storage            *ecs.Storage
	rows               []ArchetypeRow
	lastArchetypeCount int
	sortColumn         int
	sortAscending      bool
	selected           uint32
}

func NewArchetypeViewer(title string, storage *ecs.Storage) *ArchetypeViewer {
	return &ArchetypeViewer{
		Title:              title,
		storage:            storage,
		lastArchetypeCount: -1,
		sortColumn:         ColumnEntityCount,
	}
}

// SortBy orders rows by column. Ties fall back to archetype id.
func (av *ArchetypeViewer) SortBy(column int, ascending bool) {
	av.sortColumn = column
	av.sortAscending = ascending
	av.sortRows()
}

// Select makes the archetype with id the one whose entities are listed.
func (av *ArchetypeViewer) Select(id uint32) {
	av.selected = id
}

// Rows returns the archetypes with current entity counts, in sort order.
func (av *ArchetypeViewer) Rows() []ArchetypeRow {
	archetypes := av.storage.Archetypes()
	if len(archetypes) != av.lastArchetypeCount {
		av.rebuild(archetypes)
	} else {
		av.updateCounts()
	}
	return av.rows
}

// Entities lists the entities of the selected archetype.
func (av *ArchetypeViewer) Entities() []EntityRow {
	archetype := av.storage.GetArchetypeById(av.selected)
	if av.selected == 0 || archetype == nil {
		return nil
	}

	var rows []EntityRow
	for id := range archetype.Iter() {
		rows = append(rows, EntityRow{Id: id, Label: av.label(id)})
	}
	return rows
}

func (av *ArchetypeViewer) label(id ecs.EntityId) string {
	if c := ecs.ReadComponent[render.ExtractedCamera](av.storage, id); c != nil {
		return c.Name
	}
	if c := ecs.ReadComponent[camera.Camera](av.storage, id); c != nil {
		return c.Name
	}
	return ""
}

func (av *ArchetypeViewer) rebuild(archetypes []*ecs.Archetype) {
	av.lastArchetypeCount = len(archetypes)
	av.rows = make([]ArchetypeRow, 0, len(archetypes))
	for _, archetype := range archetypes {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		av.rows = append(av.rows, ArchetypeRow{
			Id:         archetype.ID(),
			Components: names,
			Entities:   archetype.Len(),
		})
	}
	av.sortRows()
}

func (av *ArchetypeViewer) updateCounts() {
	for i := range av.rows {
		if archetype := av.storage.GetArchetypeById(av.rows[i].Id); archetype != nil {
			av.rows[i].Entities = archetype.Len()
		}
	}
	if av.sortColumn == ColumnEntityCount {
		av.sortRows()
	}
}

func (av *ArchetypeViewer) sortRows() {
	sort.SliceStable(av.rows, func(i, j int) bool {
		a, b := av.rows[i], av.rows[j]
		var less, greater bool

		switch av.sortColumn {
		case ColumnComponents:
			ka, kb := strings.Join(a.Components, ","), strings.Join(b.Components, ",")
			less, greater = ka < kb, ka > kb
		case ColumnComponentCount:
			less, greater = len(a.Components) < len(b.Components), len(a.Components) > len(b.Components)
		case ColumnEntityCount:
			less, greater = a.Entities < b.Entities, a.Entities > b.Entities
		}

		if !less && !greater {
			return a.Id < b.Id
		}
		if av.sortAscending {
			return less
		}
		return greater
	})
}

func (av *ArchetypeViewer) Render() {
	if !imgui.BeginV(av.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := av.Rows()
	maxEntities := 0
	for _, row := range rows {
		maxEntities = max(maxEntities, row.Entities)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range av.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", row.Id), av.selected == row.Id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				av.selected = row.Id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Components)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Entities))

			if maxEntities > 0 {
				barWidth := float32(row.Entities) / float32(maxEntities) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}
		imgui.EndTable()
	}

	if entities := av.Entities(); len(entities) > 0 {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Archetype 0x%X: %d entities", av.selected, len(entities)))
		for _, entity := range entities {
			if entity.Label != "" {
				imgui.BulletText(fmt.Sprintf("%s  %s", entity.Id, entity.Label))
			} else {
				imgui.BulletText(entity.Id.String())
			}
		}
	}

	imgui.End()
}
