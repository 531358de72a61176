package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/takeashot/ecs"
)

type ArchetypeInfo struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

func NewArchetypeViewer(storage *ecs.Storage, browser *EntityBrowser) *ArchetypeViewer {
	return &ArchetypeViewer{
		storage:       storage,
		browser:       browser,
		sortColumn:    3,
		sortAscending: false,
	}
}

func collectArchetypes(storage *ecs.Storage) []ArchetypeInfo {
	var archetypes []ArchetypeInfo
	for archetype := range storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}
		archetypes = append(archetypes, ArchetypeInfo{
			ID:             archetype.ID(),
			ComponentTypes: componentTypes,
			EntityCount:    archetype.Len(),
		})
	}
	return archetypes
}

// sortArchetypes orders by column: 0 ID, 1 components, 2 component count,
// 3 entity count.
func sortArchetypes(archetypes []ArchetypeInfo, column int, ascending bool) {
	slices.SortStableFunc(archetypes, func(a, b ArchetypeInfo) int {
		var c int
		switch column {
		case 0:
			c = compare(a.ID, b.ID)
		case 1:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			c = len(a.ComponentTypes) - len(b.ComponentTypes)
		default:
			c = a.EntityCount - b.EntityCount
		}
		if c == 0 {
			c = compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

func (av *ArchetypeViewer) Render() {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.archetypes = collectArchetypes(av.storage)
	sortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	if av.selectedArchId != nil && imgui.Button("Show All Archetypes") {
		av.selectedArchId = nil
		av.browser.FilterArchetype(nil)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selectedArchId != nil && *av.selectedArchId == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				archIdCopy := arch.ID
				av.selectedArchId = &archIdCopy
				av.browser.FilterArchetype(&archIdCopy)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
