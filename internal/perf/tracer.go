// Package perf records how long menu operations take.
// Enable with BATCHNAME_PERF=1; the summary is printed when the program exits.
package perf

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stat aggregates every span recorded under one name.
type Stat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average span duration.
func (s Stat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}

	return s.Total / time.Duration(s.Count)
}

// Tracer collects spans. A nil or disabled Tracer records nothing.
type Tracer struct {
	mu        sync.Mutex
	enabled   bool
	stats     map[string]*Stat
	startTime time.Time
	output    io.Writer
	now       func() time.Time
}

// New creates a tracer that writes its summary to out
func New(out io.Writer, enabled bool) *Tracer {
	return &Tracer{
		enabled:   enabled,
		stats:     make(map[string]*Stat),
		startTime: time.Now(),
		output:    out,
		now:       time.Now,
	}
}

// Enabled returns true if spans are recorded.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// StartSpan begins a new timed span. Returns a function to end the span.
// Usage:
//
//	end := tracer.StartSpan("commit")
//	defer end()
func (t *Tracer) StartSpan(name string) func() {
	if !t.Enabled() {
		return func() {}
	}

	started := t.now()

	return func() {
		t.record(name, t.now().Sub(started))
	}
}

func (t *Tracer) record(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stat, ok := t.stats[name]
	if !ok {
		stat = &Stat{Name: name}
		t.stats[name] = stat
	}

	stat.Count++
	stat.Total += d

	if d > stat.Max {
		stat.Max = d
	}
}

// Stats returns the recorded spans, longest total first.
func (t *Tracer) Stats() []Stat {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Stat, 0, len(t.stats))
	for _, s := range t.stats {
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Name < out[j].Name
		}

		return out[i].Total > out[j].Total
	})

	return out
}

// Shutdown prints the summary. Call this at the end of main() using defer.
func (t *Tracer) Shutdown() {
	if !t.Enabled() {
		return
	}

	t.printSummary()
}

//nolint:errcheck // Best-effort debug output - errors writing to stderr are not actionable
func (t *Tracer) printSummary() {
	totalDuration := t.now().Sub(t.startTime)
	stats := t.Stats()

	_, _ = fmt.Fprintf(t.output, "\n")
	_, _ = fmt.Fprintf(t.output, "╔══════════════════════════════════════════════════════════════════╗\n")
	_, _ = fmt.Fprintf(t.output, "║                    PERFORMANCE SUMMARY                           ║\n")
	_, _ = fmt.Fprintf(t.output, "╠══════════════════════════════════════════════════════════════════╣\n")
	_, _ = fmt.Fprintf(t.output, "║ Total session time: %-44s ║\n", totalDuration.Round(time.Microsecond))
	_, _ = fmt.Fprintf(t.output, "╚══════════════════════════════════════════════════════════════════╝\n\n")

	_, _ = fmt.Fprintf(t.output, "%-30s %6s %12s %12s %12s\n", "OPERATION", "COUNT", "TOTAL", "MEAN", "MAX")
	_, _ = fmt.Fprintf(t.output, "────────────────────────────────────────────────────────────────────────────\n")

	for _, s := range stats {
		name := s.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}

		_, _ = fmt.Fprintf(t.output, "%-30s %6d %12s %12s %12s %s\n",
			name,
			s.Count,
			s.Total.Round(time.Microsecond),
			s.Mean().Round(time.Microsecond),
			s.Max.Round(time.Microsecond),
			progressBar(float64(s.Total)/float64(totalDuration)*100, 8))
	}

	_, _ = fmt.Fprintf(t.output, "\n")
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))

	if filled > width {
		filled = width
	}

	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
