package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/avoidance/game"
	"github.com/plus3/ooftn/ecs"
)

type Report struct {
	// Configuration
	SessionID string
	Seed      uint64
	Duration  time.Duration
	MaxFrames int64
	DeltaTime float64

	// Results
	Frames         int64
	TotalTime      time.Duration
	Deaths         int
	Level          int
	Tally          game.Tally
	UpdateTime     Stats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Avoidance Soak Report

## Run Configuration
- **Session:** {{.SessionID}}
- **Seed:** {{.Seed}}
- **Run Duration:** {{.Duration}}
{{- if .MaxFrames}}
- **Frame Limit:** {{.MaxFrames}}
{{- end}}
- **Frame Step:** {{printf "%.4f" .DeltaTime}}s

## Play
- **Frames:** {{.Frames}}
- **Deaths:** {{.Deaths}}
- **Current Level:** {{.Level}}
- **Best Level:** {{.Tally.BestLevel}}
- **Enemies:** {{.Tally.EnemiesSpawned}} spawned, {{.Tally.EnemiesExpired}} expired, {{.Tally.EnemiesDestroyed}} destroyed
- **Power-ups:** {{.Tally.PowerUpsSpawned}} spawned, {{.Tally.PowerUpsCollected}} collected, {{.Tally.PowerUpsDetonated}} detonated

## Performance Results
- **Total Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Systems:**
{{- range .Systems}}
  - **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}}, {{.ExecutionCount}} runs
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc | mb}} MB
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

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
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
