// Package debugui provides immediate-mode GUI integration for registries using Dear ImGui.
// Tool windows are components on ordinary entities; DebugToolsSystem renders them
// after the frame's commands have been applied.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton, when one exists, with the
// current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// DebugToolsSystem renders the windows spawned by SpawnDebugUI. It does
// nothing until SpawnDebugUI has created the Selection singleton.
//
// Rendering is deferred until after the frame's commands are flushed, and each
// tool is looked up again by id at that point since the flush may have moved
// it within its pool.
type DebugToolsSystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Pools      ecs.Query[struct{ *PoolViewerComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries    ecs.Query[struct{ *QueryDebuggerComponent }]
	Selection  ecs.Singleton[Selection]
}

func (d *DebugToolsSystem) Execute(frame *ecs.UpdateFrame) {
	r := frame.Registry
	selection := d.Selection.Get()
	if selection == nil {
		return
	}
	dt := float32(frame.DeltaTime)

	for id := range d.Browsers.Iter() {
		deferTool(frame, id, func(c *EntityBrowserComponent) { c.Render(r, selection) })
	}
	for id := range d.Inspectors.Iter() {
		deferTool(frame, id, func(c *ComponentInspectorComponent) { c.Render(r, selection) })
	}
	for id := range d.Pools.Iter() {
		deferTool(frame, id, func(c *PoolViewerComponent) { c.Render(r) })
	}
	for id := range d.Stats.Iter() {
		deferTool(frame, id, func(c *PerformanceStatsComponent) { c.Render(r, dt) })
	}
	for id := range d.Queries.Iter() {
		deferTool(frame, id, func(c *QueryDebuggerComponent) { c.Render(r) })
	}
}

func deferTool[T any](frame *ecs.UpdateFrame, id ecs.EntityId, render func(*T)) {
	r := frame.Registry
	frame.Commands.Defer(func() {
		if c, ok := ecs.PoolOf[T](r).TryGet(id); ok {
			render(c)
		}
	})
}
