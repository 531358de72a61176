package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	TickRate  int
	Seed      uint64
	ClickRate float64
	Targets   int

	// Gameplay
	Rounds     int
	BestScore  uint
	Shots      int
	Hits       int
	Points     uint
	FinalState string
	Entities   int
	Archetypes int

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats

	lastScore uint
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
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// HitRate is hits per shot as a percentage.
func (r *Report) HitRate() float64 {
	if r.Shots == 0 {
		return 0
	}
	return 100 * float64(r.Hits) / float64(r.Shots)
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

const reportTemplate = `
{{title "Take a Shot! Soak Report"}}

{{heading "Run Configuration"}}
- Simulated Time:  {{.Duration}}
- Tick Rate:       {{.TickRate}}/s
- Seed:            {{.Seed}}
- Click Rate:      {{printf "%.2f" .ClickRate}}
- Targets:         {{.Targets}}

{{heading "Gameplay"}}
- Rounds Finished: {{.Rounds}}
- Best Score:      {{.BestScore}}
- Shots:           {{.Shots}}
- Hits:            {{.Hits}} ({{printf "%.1f" .HitRate}}%)
- Points:          {{.Points}}
- Final State:     {{.FinalState}}
- Entities:        {{.Entities}} in {{.Archetypes}} archetypes

{{heading "Performance"}}
- Total Updates:   {{.TotalUpdates}}
- Wall Time:       {{.TotalTime}}
- Update Time:
  - Avg: {{.UpdateTime.Avg}}
  - Min: {{.UpdateTime.Min}}
  - Max: {{.UpdateTime.Max}}

{{heading "Memory (MiB)"}}
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} -> {{mb .MemStatsEnd.HeapAlloc}}
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} -> {{mb .MemStatsEnd.TotalAlloc}}
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns .MemStatsEnd.PauseTotalNs}}
`

// Generate writes the report. Headings are coloured when styled is set.
func (r *Report) Generate(w io.Writer, styled bool) error {
	style := func(s lipgloss.Style, prefix string) func(string) string {
		return func(text string) string {
			if styled {
				return s.Render(text)
			}
			return prefix + text
		}
	}

	fm := template.FuncMap{
		"title":   style(titleStyle, "# "),
		"heading": style(headingStyle, "## "),
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
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

	var sb strings.Builder
	if err := tmpl.Execute(&sb, r); err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.TrimLeft(sb.String(), "\n"))
	return err
}
