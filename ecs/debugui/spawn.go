package debugui

import "github.com/plus3/takeashot/ecs"

// RegisterComponents registers the components ImguiSystem queries.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnPanel adds a panel drawn by render.
func SpawnPanel(storage *ecs.Storage, render func()) ecs.EntityId {
	return storage.Spawn(ImguiItem{Render: render})
}

// SpawnPerformancePanel adds a PerformancePanel watching another world.
func SpawnPerformancePanel(storage *ecs.Storage, watched *ecs.Storage, scheduler *ecs.Scheduler) *PerformancePanel {
	panel := NewPerformancePanel("Performance", watched, scheduler, 120)
	SpawnPanel(storage, panel.Render)
	return panel
}

// SpawnInspectors adds the archetype viewer, entity browser, component
// inspector and query debugger, all watching another world.
func SpawnInspectors(storage *ecs.Storage, watched *ecs.Storage) *EntityBrowser {
	browser := NewEntityBrowser(watched, 50)
	SpawnPanel(storage, NewArchetypeViewer(watched, browser).Render)
	SpawnPanel(storage, browser.Render)
	SpawnPanel(storage, NewComponentInspector(watched, browser).Render)
	SpawnPanel(storage, NewQueryDebugger(watched).Render)
	return browser
}

// Install adds the singletons ImguiSystem reads and registers it.
func Install(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	ecs.NewSingleton[ImguiInputState](storage)
	ecs.NewSingleton[ImguiVisibility](storage)
	scheduler.Register(&ImguiSystem{})
}
