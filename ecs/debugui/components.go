package debugui

import "github.com/plus3/takeashot/ecs"

// Inspector panels. Each watches one storage, usually a different world from
// the one its ImguiItem lives in.

// EntityBrowser lists the watched world's entities and remembers a selection.
type EntityBrowser struct {
	storage            *ecs.Storage
	entities           []EntityInfo
	selectedEntityId   ecs.EntityId
	filterText         string
	filterArchetypeId  *uint32
	maxEntitiesPerPage int
	currentPage        int
	sortColumn         int
	sortAscending      bool
}

// ComponentInspector shows and edits the components of the browser's
// selected entity.
type ComponentInspector struct {
	storage *ecs.Storage
	browser *EntityBrowser
}

// ArchetypeViewer tabulates archetypes; clicking one filters the browser.
type ArchetypeViewer struct {
	storage        *ecs.Storage
	browser        *EntityBrowser
	archetypes     []ArchetypeInfo
	selectedArchId *uint32
	sortColumn     int
	sortAscending  bool
}

// QueryDebugger shows which archetypes a set of component types matches.
type QueryDebugger struct {
	storage                *ecs.Storage
	selectedComponentTypes map[string]bool
}
