package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/goccy/go-json"
	"github.com/plus3/scenecs/ecs"
	"github.com/rotisserie/eris"
)

type Report struct {
	// Configuration
	Duration      time.Duration `json:"duration"`
	Entities      int           `json:"entities"`
	SpawnRate     int           `json:"spawnRate"`
	SnapshotEvery int           `json:"snapshotEvery"`
	Seed          int64         `json:"seed"`

	// Results
	TotalUpdates   int64             `json:"totalUpdates"`
	TotalTime      time.Duration     `json:"totalTime"`
	UpdateTime     Stats             `json:"updateTime"`
	Operations     Counters          `json:"operations"`
	Registry       ecs.RegistryStats `json:"registry"`
	Systems        []ecs.SystemStats `json:"systems"`
	GCPauseMetrics bool              `json:"-"`
	MemStart       MemSnapshot       `json:"memStart"`
	MemEnd         MemSnapshot       `json:"memEnd"`
}

// MemSnapshot is the subset of runtime.MemStats the report shows
type MemSnapshot struct {
	HeapAlloc    uint64 `json:"heapAlloc"`
	TotalAlloc   uint64 `json:"totalAlloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"numGC"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
}

func readMem() MemSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemSnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

type Stats struct {
	Min     time.Duration   `json:"min"`
	Max     time.Duration   `json:"max"`
	Avg     time.Duration   `json:"avg"`
	P99     time.Duration   `json:"p99"`
	Samples []time.Duration `json:"-"`
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// Generate writes the report in the given format, "text" or "json"
func (r *Report) Generate(w io.Writer, format string) error {
	switch format {
	case "json":
		return r.generateJSON(w)
	case "text", "":
		return r.generateText(w)
	default:
		return eris.Errorf("unknown report format %q", format)
	}
}

func (r *Report) generateJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return eris.Wrap(err, "failed to encode report")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "failed to write report")
	}
	return nil
}

func (r *Report) generateText(w io.Writer) error {
	const reportTemplate = `
# Scene Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Spawn Rate:** {{.SpawnRate}} per frame
- **Snapshot Period:** {{.SnapshotEvery}} frames
- **Seed:** {{.Seed}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Systems
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Scene Operations
- Spawned: {{.Operations.Spawned}}
- Removed: {{.Operations.Removed}}
- Duplicated: {{.Operations.Duplicated}}
- Reparented: {{.Operations.Reparented}}
- Snapshots: {{.Operations.Snapshots}} taken, {{.Operations.Restores}} restored
- Components visited by views: {{.Operations.Visited}}

## Final Registry
- Live Entities: {{.Registry.EntityCount}}
- Destroyed Slots: {{.Registry.DestroyedCount}}
- Components: {{.Registry.ComponentCount}} in {{.Registry.PoolCount}} pools
{{range .Registry.PoolBreakdown}}  - {{.Type}}: {{.Size}} (extent {{.Extent}})
{{end}}
## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStart.HeapAlloc}} (start) -> {{mb .MemEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemEnd.HeapAlloc .MemStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStart.TotalAlloc}} (start) -> {{mb .MemEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemEnd.TotalAlloc .MemStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStart.Sys}} (start) -> {{mb .MemEnd.Sys}} (end) -> delta: {{mb (bsub .MemEnd.Sys .MemStart.Sys)}}
- Num GC:         {{.MemStart.NumGC}} (start) -> {{.MemEnd.NumGC}} (end) -> delta: {{usub .MemEnd.NumGC .MemStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (bsub .MemEnd.PauseTotalNs .MemStart.PauseTotalNs)}}
- **Num GC Cycles:** {{usub .MemEnd.NumGC .MemStart.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return eris.Wrap(err, "failed to parse report template")
	}
	if err := tmpl.Execute(w, r); err != nil {
		return eris.Wrap(err, "failed to render report")
	}
	return nil
}
