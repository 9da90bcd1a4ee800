package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecs/ecs"
)

// PoolViewerCache holds the last pool breakdown, refreshed every frame
type PoolViewerCache struct {
	pools []ecs.PoolStats
}

func NewPoolViewerComponent() PoolViewerComponent {
	return PoolViewerComponent{
		cache:         &PoolViewerCache{},
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render draws one row per pool and, below the table, the owners of the
// selected pool in dense order.
func (pv *PoolViewerComponent) Render(r *ecs.Registry) {
	if !imgui.BeginV("Pool Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	pv.cache.pools = r.CollectStats().PoolBreakdown
	sortPools(pv.cache.pools, pv.sortColumn, pv.sortAscending)

	maxSize := 0
	for _, p := range pv.cache.pools {
		maxSize = max(maxSize, p.Size)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("PoolTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Size")
		imgui.TableSetupColumn("Extent")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			pv.sortColumn = int(spec.ColumnIndex())
			pv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortPools(pv.cache.pools, pv.sortColumn, pv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, p := range pv.cache.pools {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(p.Type, pv.selectedPool == p.Type, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				pv.selectedPool = p.Type
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.Size))
			if maxSize > 0 {
				barWidth := float32(p.Size) / float32(maxSize) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.Extent))
		}

		imgui.EndTable()
	}

	pv.renderSelected(r)
	imgui.End()
}

func (pv *PoolViewerComponent) renderSelected(r *ecs.Registry) {
	if pv.selectedPool == "" {
		return
	}
	pool := findPool(r, pv.selectedPool)
	if pool == nil {
		pv.selectedPool = ""
		return
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("%s: %d owners", pv.selectedPool, pool.Len()))
	for i, id := range pool.Entities() {
		if r.IsDestroyed(id) {
			imgui.BulletText(fmt.Sprintf("[%d] %d (destroyed)", i, id))
			continue
		}
		e := r.EntityOf(id)
		imgui.BulletText(fmt.Sprintf("[%d] %s %s", i, e, r.Name(e)))
	}
}

// findPool returns the pool whose type prints as name, or nil
func findPool(r *ecs.Registry, name string) ecs.ErasedPool {
	for _, p := range r.Pools() {
		if p.Type().String() == name {
			return p
		}
	}
	return nil
}

func sortPools(pools []ecs.PoolStats, column int, ascending bool) {
	sort.SliceStable(pools, func(i, j int) bool {
		a, b := pools[i], pools[j]
		var less bool

		switch column {
		case 1:
			less = a.Size < b.Size
		case 2:
			less = a.Extent < b.Extent
		default:
			less = a.Type < b.Type
		}

		if !ascending {
			return !less
		}
		return less
	})
}
