// Package status is a lock-free metric registry read by the status line
package status

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Well-known metric keys
const (
	Taps         = "gesture.taps"
	DragStarts   = "drag.starts"
	Drops        = "drag.drops"
	Snaps        = "drag.snaps"
	HostFailures = "drag.host_failures"
	Zones        = "zones.count"
	Filings      = "store.filings"
	FilingErrors = "store.errors"
	Captures     = "watcher.captures"
)

// Registry is the central metrics facade
// Components cache counter pointers during construction; hot paths write atomics directly
type Registry struct {
	mu     sync.RWMutex
	ints   map[string]*atomic.Int64
	flags  map[string]*atomic.Bool
	labels map[string]string
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   make(map[string]*atomic.Int64),
		flags:  make(map[string]*atomic.Bool),
		labels: make(map[string]string),
	}
}

// Int returns the counter for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	return getOrCreate(&r.mu, r.ints, key)
}

// Flag returns the boolean for key, creating it on first use
func (r *Registry) Flag(key string) *atomic.Bool {
	return getOrCreate(&r.mu, r.flags, key)
}

// SetLabel sets a short display label (e.g. the pending screenshot name)
func (r *Registry) SetLabel(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels[key] = value
}

// Label returns a display label
func (r *Registry) Label(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.labels[key]
}

// Metric is one entry of a snapshot
type Metric struct {
	Key   string
	Value string
}

// Snapshot returns every metric in sorted key order
func (r *Registry) Snapshot() []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metric, 0, len(r.ints)+len(r.flags)+len(r.labels))
	for k, v := range r.ints {
		out = append(out, Metric{Key: k, Value: fmt.Sprint(v.Load())})
	}
	for k, v := range r.flags {
		out = append(out, Metric{Key: k, Value: fmt.Sprint(v.Load())})
	}
	for k, v := range r.labels {
		out = append(out, Metric{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Format renders selected keys as "key=value" pairs joined by sep
// Missing keys are skipped
func (r *Registry) Format(sep string, keys ...string) string {
	snap := r.Snapshot()
	index := make(map[string]string, len(snap))
	for _, m := range snap {
		index[m.Key] = m.Value
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := index[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, sep)
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ints) + len(r.flags) + len(r.labels)
}

// getOrCreate returns the pointer for key, allocating on first call
// Fast path takes the read lock only
func getOrCreate[T any](mu *sync.RWMutex, m map[string]*T, key string) *T {
	mu.RLock()
	if ptr, ok := m[key]; ok {
		mu.RUnlock()
		return ptr
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	// Double-check after acquiring write lock
	if ptr, ok := m[key]; ok {
		return ptr
	}
	ptr := new(T)
	m[key] = ptr
	return ptr
}
