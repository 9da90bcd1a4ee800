package debugui

import "github.com/plus3/scenecs/ecs"

// SpawnDebugUI creates one entity per tool window and the Selection singleton.
// The entity browser subscribes to the registry's events to refresh itself.
func SpawnDebugUI(r *ecs.Registry) {
	ecs.NewSingleton[Selection](r, Selection{Entity: ecs.Nil})

	browser := NewEntityBrowserComponent(100)
	browser.Subscribe(r.Events())

	r.Spawn("debugui: entity browser", browser)
	r.Spawn("debugui: component inspector", NewComponentInspectorComponent())
	r.Spawn("debugui: pool viewer", NewPoolViewerComponent())
	r.Spawn("debugui: performance stats", NewPerformanceStatsComponent(120))
	r.Spawn("debugui: query debugger", NewQueryDebuggerComponent())
}

func RegisterDebugUIComponents(r *ecs.Registry) {
	ecs.RegisterComponent[ImguiItem](r)
	ecs.RegisterComponent[EntityBrowserComponent](r)
	ecs.RegisterComponent[ComponentInspectorComponent](r)
	ecs.RegisterComponent[PoolViewerComponent](r)
	ecs.RegisterComponent[PerformanceStatsComponent](r)
	ecs.RegisterComponent[QueryDebuggerComponent](r)
}
