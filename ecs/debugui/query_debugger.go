package debugui

import (
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/takeashot/ecs"
)

func NewQueryDebugger(storage *ecs.Storage) *QueryDebugger {
	return &QueryDebugger{
		storage:                storage,
		selectedComponentTypes: make(map[string]bool),
	}
}

// componentTypeNames lists every component type present in storage, sorted.
func componentTypeNames(storage *ecs.Storage) []string {
	seen := make(map[string]bool)
	for archetype := range storage.Archetypes() {
		for _, t := range archetype.Types() {
			seen[t.String()] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// matchingArchetypes returns the archetypes holding every named type, as a
// View over those types would see them. Largest first.
func matchingArchetypes(storage *ecs.Storage, typeNames map[string]bool) []ArchetypeInfo {
	var matching []ArchetypeInfo
	for _, arch := range collectArchetypes(storage) {
		have := 0
		for _, name := range arch.ComponentTypes {
			if typeNames[name] {
				have++
			}
		}
		if have == len(typeNames) {
			matching = append(matching, arch)
		}
	}
	sortArchetypes(matching, 3, false)
	return matching
}

func (qd *QueryDebugger) Render() {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedComponentTypes)
	}

	for _, compType := range componentTypeNames(qd.storage) {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				qd.selectedComponentTypes[compType] = true
			} else {
				delete(qd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	if len(qd.selectedComponentTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := matchingArchetypes(qd.storage, qd.selectedComponentTypes)
	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.EntityCount
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
