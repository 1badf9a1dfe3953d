package perf

import (
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes front-desk operations from the queries they issue.
type EntryKind uint8

const (
	KindOperation EntryKind = iota
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Label      string // operation name ("sell", "dashboard") or statement label ("SELECT pass")
	Failed     bool
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries.
// Writes are non-blocking; when full, oldest entries are overwritten.
// Aggregation happens only on read (Snapshot).
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   int64 // total entries ever written (atomic for stats)
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: size > 0
// POST: Returns a ready-to-use collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Record appends an entry to the ring buffer.
// PRE: e is a valid Entry
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.count, 1)
}

// Time records an operation that started at start.
func (c *Collector) Time(label string, start time.Time, err error) {
	c.Record(Entry{
		Kind:       KindOperation,
		Label:      label,
		Failed:     err != nil,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

// TotalRecorded returns the total number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// Snapshot holds aggregated performance data computed on read.
type Snapshot struct {
	TotalRecorded     int64
	Operations        int
	FailedOperations  int
	OperationP50Ms    float64
	OperationP95Ms    float64
	OperationP99Ms    float64
	SlowestOperations []LabelStat
	SlowestQueries    []LabelStat
}

// LabelStat aggregates timing for a single operation or statement label.
type LabelStat struct {
	Label   string
	AvgMs   float64
	MaxMs   float64
	Count   int
	TotalMs float64
}

// Snapshot computes aggregated stats from the ring buffer.
// PRE: none
// POST: Returns a Snapshot with percentiles and top-N lists
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.entries)
	c.mu.Unlock()

	var opDurations []float64
	opStats := make(map[string]*LabelStat)
	queryStats := make(map[string]*LabelStat)
	snap := Snapshot{TotalRecorded: c.TotalRecorded()}

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		stats := queryStats
		if e.Kind == KindOperation {
			stats = opStats
			opDurations = append(opDurations, e.DurationMs)
			snap.Operations++
			if e.Failed {
				snap.FailedOperations++
			}
		}
		s, ok := stats[e.Label]
		if !ok {
			s = &LabelStat{Label: e.Label}
			stats[e.Label] = s
		}
		s.Count++
		s.TotalMs += e.DurationMs
		if e.DurationMs > s.MaxMs {
			s.MaxMs = e.DurationMs
		}
	}

	snap.SlowestOperations = topByAvg(opStats, topN)
	snap.SlowestQueries = topByAvg(queryStats, topN)

	if len(opDurations) > 0 {
		sort.Float64s(opDurations)
		snap.OperationP50Ms = percentile(opDurations, 50)
		snap.OperationP95Ms = percentile(opDurations, 95)
		snap.OperationP99Ms = percentile(opDurations, 99)
	}

	return snap
}

// StatementLabel reduces a SQL statement to "VERB table" for grouping.
// Unrecognised statements are labelled by their verb alone.
func StatementLabel(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "EMPTY"
	}
	verb := strings.ToUpper(fields[0])
	var marker string
	switch verb {
	case "SELECT", "DELETE":
		marker = "FROM"
	case "INSERT":
		marker = "INTO"
	case "UPDATE":
		if len(fields) > 1 {
			return verb + " " + fields[1]
		}
		return verb
	default:
		return verb
	}
	for i, f := range fields[:len(fields)-1] {
		if strings.EqualFold(f, marker) {
			return verb + " " + strings.Trim(fields[i+1], "(),")
		}
	}
	return verb
}

// percentile returns the p-th percentile from a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topByAvg returns the top N labels sorted by average duration (descending).
func topByAvg(stats map[string]*LabelStat, n int) []LabelStat {
	list := make([]LabelStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs != list[j].AvgMs {
			return list[i].AvgMs > list[j].AvgMs
		}
		return list[i].Label < list[j].Label
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
