package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecs/ecs"
)

const queryDebuggerPreview = 50

type QueryDebuggerCache struct {
	componentTypes []reflect.Type
	lastPoolCount  int
	view           *ecs.DynamicView
	viewKey        string
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastPoolCount: -1,
		},
	}
}

// Render lets the user tick component types and shows the entities owning all
// of them, through a DynamicView over the chosen pools.
func (qd *QueryDebuggerComponent) Render(r *ecs.Registry) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(r)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		name := compType.String()
		selected := qd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				qd.selectedComponentTypes[name] = true
			} else {
				delete(qd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	view := qd.selectedView(r)
	if view == nil {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Matching Entities: %d", view.Count()))

	if imgui.TreeNodeStr("Matches") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatchTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("Name")
			imgui.TableHeadersRow()

			shown := 0
			for id := range view.Iter() {
				if shown == queryDebuggerPreview {
					break
				}
				if r.IsDestroyed(id) {
					continue
				}
				shown++
				e := r.EntityOf(id)

				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(e.String())
				imgui.TableSetColumnIndex(1)
				imgui.Text(r.Name(e))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// selectedView returns a view over the ticked types, rebuilt only when the
// selection changes. It returns nil when nothing is ticked.
func (qd *QueryDebuggerComponent) selectedView(r *ecs.Registry) *ecs.DynamicView {
	var selected []reflect.Type
	key := ""
	for _, t := range qd.cache.componentTypes {
		if qd.selectedComponentTypes[t.String()] {
			selected = append(selected, t)
			key += t.String() + ";"
		}
	}
	if len(selected) == 0 {
		qd.cache.view = nil
		qd.cache.viewKey = ""
		return nil
	}
	if qd.cache.view == nil || qd.cache.viewKey != key {
		qd.cache.view = ecs.NewDynamicView(r, selected...)
		qd.cache.viewKey = key
	}
	return qd.cache.view
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(r *ecs.Registry) {
	pools := r.Pools()
	if qd.cache.lastPoolCount == len(pools) {
		return
	}
	qd.cache.lastPoolCount = len(pools)

	qd.cache.componentTypes = make([]reflect.Type, 0, len(pools))
	for _, p := range pools {
		qd.cache.componentTypes = append(qd.cache.componentTypes, p.Type())
	}
	sort.Slice(qd.cache.componentTypes, func(i, j int) bool {
		return qd.cache.componentTypes[i].String() < qd.cache.componentTypes[j].String()
	})
	qd.cache.view = nil
}
