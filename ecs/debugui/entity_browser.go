package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecs/ecs"
)

type EntityInfo struct {
	Entity         ecs.Entity
	Name           string
	Depth          int
	ComponentTypes []string
}

// EntityBrowserCache holds the flattened hierarchy. It is shared with the
// event handlers registered by Subscribe, which only flip dirty.
type EntityBrowserCache struct {
	entities      []EntityInfo
	dirty         bool
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			dirty:         true,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// Subscribe marks the browser for a rebuild whenever the scene changes shape
func (eb *EntityBrowserComponent) Subscribe(bus *ecs.EventBus) {
	cache := eb.cache
	ecs.Subscribe(bus, func(ecs.EntityCreated) { cache.dirty = true })
	ecs.Subscribe(bus, func(ecs.EntityRemoved) { cache.dirty = true })
	ecs.Subscribe(bus, func(ecs.ParentChanged) { cache.dirty = true })
	ecs.Subscribe(bus, func(ecs.NameChanged) { cache.dirty = true })
	ecs.Subscribe(bus, func(ecs.ComponentAdded) { cache.dirty = true })
	ecs.Subscribe(bus, func(ecs.ComponentRemoved) { cache.dirty = true })
	ecs.Subscribe(bus, func(ecs.SnapshotLoaded) { cache.dirty = true })
}

func (eb *EntityBrowserComponent) Render(r *ecs.Registry, selection *Selection) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if eb.cache.dirty {
		eb.rebuildCache(r)
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	eb.renderActions(r, selection)
	imgui.Separator()

	if eb.filterText == "" {
		eb.renderTree(selection)
	} else {
		eb.renderTable(selection)
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) renderActions(r *ecs.Registry, selection *Selection) {
	if selection.Entity.IsNil() || !r.Alive(selection.Entity) {
		imgui.Text("No entity selected")
		return
	}

	if imgui.Button("Duplicate") {
		selection.Entity = r.DuplicateEntity(selection.Entity)
	}
	imgui.SameLine()
	if imgui.Button("Detach") {
		r.ClearParent(selection.Entity)
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		r.RemoveEntity(selection.Entity)
		selection.Entity = ecs.Nil
	}
}

// renderTree draws the hierarchy in depth-first order, one indented row per entity
func (eb *EntityBrowserComponent) renderTree(selection *Selection) {
	start, end := eb.page(len(eb.cache.entities))
	for _, info := range eb.cache.entities[start:end] {
		label := fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", info.Depth), info.Name, info.Entity)
		if imgui.SelectableBoolV(label, selection.Entity == info.Entity, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			selection.Entity = info.Entity
		}
	}
	eb.renderPager(len(eb.cache.entities))
}

func (eb *EntityBrowserComponent) renderTable(selection *Selection) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	filtered := eb.getFilteredEntities()

	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(filtered, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start, end := eb.page(len(filtered))
		for _, info := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(info.Entity.String(), selection.Entity == info.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selection.Entity = info.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(info.Name)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(info.ComponentTypes)))
		}

		imgui.EndTable()
	}
	eb.renderPager(len(filtered))
}

func (eb *EntityBrowserComponent) page(total int) (int, int) {
	start := eb.currentPage * eb.maxEntitiesPerPage
	if start > total {
		eb.currentPage = 0
		start = 0
	}
	return start, min(start+eb.maxEntitiesPerPage, total)
}

func (eb *EntityBrowserComponent) renderPager(total int) {
	if total <= eb.maxEntitiesPerPage {
		imgui.Text(fmt.Sprintf("Total: %d entities", total))
		return
	}

	totalPages := (total + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, total))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.currentPage < totalPages-1 {
		eb.currentPage++
	}
}

func (eb *EntityBrowserComponent) rebuildCache(r *ecs.Registry) {
	eb.cache.entities = buildHierarchy(r)
	eb.cache.dirty = false
}

// buildHierarchy lists every live entity, roots in id order, each followed by
// its descendants in link order.
func buildHierarchy(r *ecs.Registry) []EntityInfo {
	all := r.Entities()
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })

	out := make([]EntityInfo, 0, len(all))
	seen := make(map[ecs.EntityId]bool, len(all))
	var visit func(e ecs.Entity, depth int)
	visit = func(e ecs.Entity, depth int) {
		if seen[e.Id] {
			return
		}
		seen[e.Id] = true
		out = append(out, describe(r, e, depth))
		for _, child := range r.Children(e) {
			visit(child, depth+1)
		}
	}
	for _, e := range all {
		if !r.HasParent(e) {
			visit(e, 0)
		}
	}
	return out
}

func describe(r *ecs.Registry, e ecs.Entity, depth int) EntityInfo {
	types := r.ComponentTypes(e)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	sort.Strings(names)
	return EntityInfo{
		Entity:         e,
		Name:           r.Name(e),
		Depth:          depth,
		ComponentTypes: names,
	}
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		var less bool

		switch column {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.Entity.Id < b.Entity.Id
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// getFilteredEntities matches the filter against id, name and component names
func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, info := range eb.cache.entities {
		idStr := info.Entity.String()
		nameStr := strings.ToLower(info.Name)
		componentsStr := strings.ToLower(strings.Join(info.ComponentTypes, " "))

		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(nameStr, filterLower) &&
			!strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, info)
	}

	sortEntities(filtered, eb.cache.sortColumn, eb.cache.sortAscending)
	return filtered
}
