package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/viewcore/ecs"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

// Push records a frame that took deltaTime seconds.
func (h *FrameHistory) Push(deltaTime float32) {
	h.samples[h.next] = deltaTime * 1000
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean frame time in milliseconds over the recorded frames.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.filled] {
		total += ms
	}
	return total / float32(h.filled)
}

// FPS is the frame rate implied by Average, or 0 before any frame.
func (h *FrameHistory) FPS() float32 {
	avg := h.Average()
	if avg == 0 {
		return 0
	}
	return 1000 / avg
}

// PerformanceStats is a panel showing frame times, storage counts and
// per-system timings.
type PerformanceStats struct {
	History *FrameHistory
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{History: NewFrameHistory(historyFrames)}
}

func (ps *PerformanceStats) Render(storage *ecs.Storage, scheduler *ecs.Scheduler, deltaTime float32) {
	ps.History.Push(deltaTime)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", ps.History.Average(), ps.History.FPS()))

	imgui.Separator()
	imgui.PlotLinesFloatPtr("##frametime", &ps.History.samples[0], int32(len(ps.History.samples)))

	if scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStats", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()
			for _, sys := range scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall time between calls to DeltaTime.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// DeltaTime returns the seconds since the previous call, or since creation.
func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.last).Seconds())
	ft.last = now
	return delta
}
