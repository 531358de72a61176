package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/takeashot/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
	Parent         ecs.EntityId
	HasParent      bool
	Children       int
}

func NewEntityBrowser(storage *ecs.Storage, maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		storage:            storage,
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
		sortAscending:      true,
	}
}

// collectEntities snapshots every live entity of storage.
func collectEntities(storage *ecs.Storage) []EntityInfo {
	entities := make([]EntityInfo, 0, storage.Count())
	for archetype := range storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for id := range archetype.Iter() {
			parent, hasParent := storage.Parent(id)
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
				Parent:         parent,
				HasParent:      hasParent,
				Children:       len(storage.Children(id)),
			})
		}
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 3:
			c = compare(a.Parent, b.Parent)
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

func compare[T ~uint32 | ~uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// filterEntities keeps entities whose ID, archetype or component names
// contain text, limited to archetypeId when set.
func filterEntities(entities []EntityInfo, text string, archetypeId *uint32) []EntityInfo {
	if text == "" && archetypeId == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if archetypeId != nil && entity.ArchetypeID != *archetypeId {
			continue
		}

		if text != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			archStr := fmt.Sprintf("0x%x", entity.ArchetypeID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(archStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// entity IDs churn every round, so the list is rebuilt each frame
	eb.entities = collectEntities(eb.storage)
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetypeId = nil
	}

	filtered := filterEntities(eb.entities, eb.filterText, eb.filterArchetypeId)
	totalPages := max((len(filtered)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage, 1)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Parent")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.maxEntitiesPerPage
		end := min(start+eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			if entity.HasParent {
				imgui.Text(fmt.Sprintf("%d", entity.Parent))
			} else if entity.Children > 0 {
				imgui.Text(fmt.Sprintf("root (%d children)", entity.Children))
			}
		}

		imgui.EndTable()
	}

	if totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// FilterArchetype limits the list to one archetype; nil clears the limit.
func (eb *EntityBrowser) FilterArchetype(id *uint32) {
	eb.filterArchetypeId = id
	eb.currentPage = 0
}

// Selected returns the chosen entity, or zero when none is chosen or it has
// since been despawned.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	if eb.selectedEntityId != 0 && !eb.storage.Alive(eb.selectedEntityId) {
		eb.selectedEntityId = 0
	}
	return eb.selectedEntityId
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
}
