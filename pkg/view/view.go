// Package view holds the interactive state of the memory comparison: which
// records are selected, which metric is charted and where each record's
// animation marker currently sits.
//
// A View is safe for use from multiple goroutines. Mutators and tick
// callbacks are serialized so they never interleave, and listeners are
// notified with a snapshot after every change.
package view

import (
	"fmt"
	"sync"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
)

// State is an immutable snapshot of a View
type State struct {
	Version   uint64           `json:"version"`
	Selected  []string         `json:"selected"`
	Metric    memtype.Metric   `json:"metric"`
	Unit      string           `json:"unit"`
	Records   []memtype.Record `json:"records"`
	Chart     []chart.Point    `json:"chart"`
	Positions Positions        `json:"positions"`
	Mounted   bool             `json:"mounted"`
}

// IsSelected reports whether name is part of the snapshot's selection
func (s State) IsSelected(name string) bool {
	for _, n := range s.Selected {
		if n == name {
			return true
		}
	}
	return false
}

// Position returns the lane position of name, 0 if it never moved
func (s State) Position(name string) float64 {
	return s.Positions[name]
}

// Listener receives state snapshots
type Listener func(State)

// View is the state holder behind every front end
type View struct {
	mu        sync.Mutex
	selected  map[string]bool
	metric    memtype.Metric
	positions Positions
	version   uint64

	scheduler  Scheduler
	task       Task
	generation uint64

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// New creates a view with every record selected and the speed metric
func New() *View {
	v := &View{
		selected:  make(map[string]bool),
		metric:    memtype.Speed,
		positions: make(Positions),
		listeners: make(map[int]Listener),
	}
	for _, name := range memtype.Names() {
		v.selected[name] = true
	}
	return v
}

// State returns the current snapshot
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Filtered returns the selected records in dataset order
func (v *View) Filtered() []memtype.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filteredLocked()
}

// Metric returns the current metric
func (v *View) Metric() memtype.Metric {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.metric
}

// Subscribe registers fn to be called after every change. The returned
// function removes the listener.
func (v *View) Subscribe(fn Listener) func() {
	v.listenersMu.Lock()
	defer v.listenersMu.Unlock()

	id := v.nextID
	v.nextID++
	v.listeners[id] = fn

	return func() {
		v.listenersMu.Lock()
		defer v.listenersMu.Unlock()
		delete(v.listeners, id)
	}
}

// Toggle adds name to the selection or removes it if already selected
func (v *View) Toggle(name string) error {
	if !memtype.Exists(name) {
		return fmt.Errorf("toggle: %w: %q", memtype.ErrUnknownRecord, name)
	}

	v.mu.Lock()
	if v.selected[name] {
		delete(v.selected, name)
	} else {
		v.selected[name] = true
	}
	st := v.changedLocked(true)
	v.mu.Unlock()

	v.notify(st)
	return nil
}

// SelectAll selects every record
func (v *View) SelectAll() {
	v.mu.Lock()
	for _, name := range memtype.Names() {
		v.selected[name] = true
	}
	st := v.changedLocked(true)
	v.mu.Unlock()

	v.notify(st)
}

// SelectOnly replaces the selection with names. Unknown names are rejected
// and leave the selection untouched.
func (v *View) SelectOnly(names ...string) error {
	for _, name := range names {
		if !memtype.Exists(name) {
			return fmt.Errorf("select: %w: %q", memtype.ErrUnknownRecord, name)
		}
	}

	v.mu.Lock()
	v.selected = make(map[string]bool, len(names))
	for _, name := range names {
		v.selected[name] = true
	}
	st := v.changedLocked(true)
	v.mu.Unlock()

	v.notify(st)
	return nil
}

// SetMetric changes the charted metric
func (v *View) SetMetric(m memtype.Metric) {
	v.mu.Lock()
	v.metric = m
	st := v.changedLocked(false)
	v.mu.Unlock()

	v.notify(st)
}

// Mount starts the animation using s. Mounting an already mounted view
// replaces its scheduler.
func (v *View) Mount(s Scheduler) {
	v.mu.Lock()
	v.scheduler = s
	v.rescheduleLocked()
	st := v.changedLocked(false)
	v.mu.Unlock()

	v.notify(st)
}

// Unmount cancels the animation and notifies listeners when a task was
// running. Positions are kept.
func (v *View) Unmount() {
	v.mu.Lock()
	wasMounted := v.task != nil
	if v.task != nil {
		v.task.Cancel()
		v.task = nil
	}
	v.scheduler = nil
	v.generation++
	if !wasMounted {
		v.mu.Unlock()
		return
	}
	st := v.changedLocked(false)
	v.mu.Unlock()

	v.notify(st)
}

// Mounted reports whether an animation task is registered
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task != nil
}

// rescheduleLocked cancels the current task and registers one for the
// current selection. The callback captures the selection at registration.
func (v *View) rescheduleLocked() {
	if v.task != nil {
		v.task.Cancel()
		v.task = nil
	}
	v.generation++
	if v.scheduler == nil {
		return
	}

	gen := v.generation
	snapshot := v.filteredLocked()
	v.task = v.scheduler.Every(TickInterval, func() {
		v.tick(gen, snapshot)
	})
}

func (v *View) tick(gen uint64, records []memtype.Record) {
	v.mu.Lock()
	if gen != v.generation {
		// canceled registration that fired late
		v.mu.Unlock()
		return
	}
	v.positions = Step(v.positions, records)
	v.version++
	st := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(st)
}

func (v *View) changedLocked(selectionChanged bool) State {
	if selectionChanged && v.scheduler != nil {
		v.rescheduleLocked()
	}
	v.version++
	return v.snapshotLocked()
}

func (v *View) filteredLocked() []memtype.Record {
	all := memtype.All()
	out := make([]memtype.Record, 0, len(all))
	for _, r := range all {
		if v.selected[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

func (v *View) snapshotLocked() State {
	records := v.filteredLocked()
	selected := make([]string, len(records))
	for i, r := range records {
		selected[i] = r.Name
	}

	return State{
		Version:   v.version,
		Selected:  selected,
		Metric:    v.metric,
		Unit:      v.metric.Unit(),
		Records:   records,
		Chart:     chart.Build(records, v.metric),
		Positions: v.positions.Copy(),
		Mounted:   v.task != nil,
	}
}

func (v *View) notify(st State) {
	v.listenersMu.Lock()
	listeners := make([]Listener, 0, len(v.listeners))
	for _, fn := range v.listeners {
		listeners = append(listeners, fn)
	}
	v.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}
