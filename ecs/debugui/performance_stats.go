package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecs/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *PerformanceStatsComponent) record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// average is the mean frame time in milliseconds over the history window
func (ps *PerformanceStatsComponent) average() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStatsComponent) Render(r *ecs.Registry, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime)
	stats := r.CollectStats()

	imgui.Text(fmt.Sprintf("Live Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Destroyed Slots: %d", stats.DestroyedCount))
	imgui.Text(fmt.Sprintf("Pools: %d", stats.PoolCount))
	imgui.Text(fmt.Sprintf("Components: %d", stats.ComponentCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	if stats.HasSnapshot {
		imgui.Text(fmt.Sprintf("Snapshot: %d entities", stats.SnapshotEntities))
	} else {
		imgui.Text("Snapshot: none")
	}

	avgFrameTime := ps.average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Pool Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PoolStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Size")
			imgui.TableSetupColumn("Extent")
			imgui.TableHeadersRow()

			for _, pool := range stats.PoolBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pool.Type)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Size))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Extent))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between calls, for hosts whose loop
// does not provide a delta.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
