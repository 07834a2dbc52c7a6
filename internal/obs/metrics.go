package obs

import (
	"sort"
	"strings"
	"sync"
)

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// Tally is an in-process Meter that sums counters and keeps count/sum for
// histograms, keyed by name and labels. Safe for concurrent use.
type Tally struct {
	mu     sync.Mutex
	counts map[string]float64
	hists  map[string]HistogramStat
}

// HistogramStat is the aggregate Tally keeps per histogram series.
type HistogramStat struct {
	Count int
	Sum   float64
}

func (t *Tally) Counter(name string, value float64, labels ...Label) {
	k := seriesKey(name, labels)
	t.mu.Lock()
	if t.counts == nil {
		t.counts = make(map[string]float64)
	}
	t.counts[k] += value
	t.mu.Unlock()
}

func (t *Tally) Histogram(name string, value float64, labels ...Label) {
	k := seriesKey(name, labels)
	t.mu.Lock()
	if t.hists == nil {
		t.hists = make(map[string]HistogramStat)
	}
	s := t.hists[k]
	s.Count++
	s.Sum += value
	t.hists[k] = s
	t.mu.Unlock()
}

// Count returns the counter value for name with exactly these labels.
func (t *Tally) Count(name string, labels ...Label) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[seriesKey(name, labels)]
}

// Observed returns the histogram aggregate for name with exactly these labels.
func (t *Tally) Observed(name string, labels ...Label) HistogramStat {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hists[seriesKey(name, labels)]
}

// Counters returns a copy of every counter series, keyed like
// `name{k="v",...}`.
func (t *Tally) Counters() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]float64, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

func seriesKey(name string, labels []Label) string {
	if len(labels) == 0 {
		return name
	}
	ls := make([]Label, len(labels))
	copy(ls, labels)
	sort.Slice(ls, func(i, j int) bool { return ls[i].Key < ls[j].Key })
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, l := range ls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Key)
		b.WriteString(`="`)
		b.WriteString(l.Value)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
