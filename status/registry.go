// Package status holds lock-free counters and gauges shared between the tick and the view
package status

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
)

// Registry groups metrics by value type
// Systems cache pointers during Init; Update writes straight to the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Metric is one formatted registry entry
type Metric struct {
	Key   string
	Value string
}

// Snapshot reads every metric once and returns them sorted by key
func (r *Registry) Snapshot() []Metric {
	metrics := make([]Metric, 0, r.TotalCount())
	r.Bools.Range(func(key string, v *atomic.Bool) {
		metrics = append(metrics, Metric{key, strconv.FormatBool(v.Load())})
	})
	r.Ints.Range(func(key string, v *atomic.Int64) {
		metrics = append(metrics, Metric{key, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		metrics = append(metrics, Metric{key, strconv.FormatFloat(v.Get(), 'f', 2, 64)})
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		metrics = append(metrics, Metric{key, v.Load()})
	})
	slices.SortStableFunc(metrics, func(a, b Metric) int { return strings.Compare(a.Key, b.Key) })
	return metrics
}

// Line formats the named metrics as "key=value" pairs, skipping unregistered keys
func (r *Registry) Line(keys ...string) string {
	byKey := make(map[string]string)
	for _, m := range r.Snapshot() {
		byKey[m.Key] = m.Value
	}
	var sb strings.Builder
	for _, k := range keys {
		v, ok := byKey[k]
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", k, v)
	}
	return sb.String()
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
