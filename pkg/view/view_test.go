package view

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
)

// manualScheduler records registrations and fires them on demand
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

// manualTask state is guarded by its scheduler's mu
type manualTask struct {
	sched    *manualScheduler
	interval time.Duration
	fn       func()
	canceled bool
}

func (t *manualTask) Cancel() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	t.canceled = true
}

func (s *manualScheduler) Every(interval time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{sched: s, interval: interval, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// fire runs every live task once
func (s *manualScheduler) fire() {
	s.mu.Lock()
	var fns []func()
	for _, t := range s.tasks {
		if !t.canceled {
			fns = append(fns, t.fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

func TestNewSelectsAll(t *testing.T) {
	v := New()
	st := v.State()

	if !reflect.DeepEqual(st.Selected, memtype.Names()) {
		t.Errorf("Selected = %v, want all names", st.Selected)
	}
	if st.Metric != memtype.Speed {
		t.Errorf("Metric = %v, want speed", st.Metric)
	}
	if len(st.Positions) != 0 {
		t.Errorf("Positions should start empty, got %v", st.Positions)
	}
	if st.Mounted {
		t.Error("new view should not be mounted")
	}
}

func TestToggleInvolutive(t *testing.T) {
	for _, name := range memtype.Names() {
		t.Run(name, func(t *testing.T) {
			v := New()
			before := v.State().Selected

			if err := v.Toggle(name); err != nil {
				t.Fatal(err)
			}
			if v.State().IsSelected(name) {
				t.Errorf("%s still selected after one toggle", name)
			}
			if err := v.Toggle(name); err != nil {
				t.Fatal(err)
			}

			if after := v.State().Selected; !reflect.DeepEqual(before, after) {
				t.Errorf("selection after two toggles = %v, want %v", after, before)
			}
		})
	}
}

func TestToggleUnknown(t *testing.T) {
	v := New()
	before := v.State()

	err := v.Toggle("HBM4")
	if !errors.Is(err, memtype.ErrUnknownRecord) {
		t.Fatalf("Toggle(HBM4) error = %v, want ErrUnknownRecord", err)
	}

	after := v.State()
	if !reflect.DeepEqual(before.Selected, after.Selected) {
		t.Error("unknown toggle changed the selection")
	}
	if before.Version != after.Version {
		t.Error("unknown toggle bumped the version")
	}
}

func TestFilteredKeepsDatasetOrder(t *testing.T) {
	v := New()
	// select in reverse order
	if err := v.SelectOnly("SRAM (L1 Cache)", "GDDR6", "HBM3E"); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range v.Filtered() {
		got = append(got, r.Name)
	}
	want := []string{"HBM3E", "GDDR6", "SRAM (L1 Cache)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filtered() = %v, want %v", got, want)
	}
}

func TestLatencyScenario(t *testing.T) {
	v := New()
	if err := v.SelectOnly("HBM3E", "SRAM (L1 Cache)"); err != nil {
		t.Fatal(err)
	}
	v.SetMetric(memtype.Latency)

	st := v.State()
	if len(st.Chart) != 2 {
		t.Fatalf("chart has %d points, want 2", len(st.Chart))
	}
	if st.Chart[0].Name != "HBM3E" || st.Chart[0].Value != 10 {
		t.Errorf("first point = %+v", st.Chart[0])
	}
	if st.Chart[1].Name != "SRAM (L1 Cache)" || st.Chart[1].Value != 1 {
		t.Errorf("second point = %+v", st.Chart[1])
	}
	if st.Unit != "ns" {
		t.Errorf("Unit = %q, want ns", st.Unit)
	}
}

func TestPriceUnitWithAllSelected(t *testing.T) {
	v := New()
	v.SetMetric(memtype.PricePerGB)
	if got := v.State().Unit; got != "$/GB" {
		t.Errorf("Unit = %q, want $/GB", got)
	}
}

func TestMetricAndSelectionIndependent(t *testing.T) {
	v := New()
	if err := v.Toggle("GDDR5"); err != nil {
		t.Fatal(err)
	}
	sel := v.State().Selected

	v.SetMetric(memtype.Latency)
	if !reflect.DeepEqual(sel, v.State().Selected) {
		t.Error("SetMetric changed the selection")
	}

	if err := v.Toggle("HBM2E"); err != nil {
		t.Fatal(err)
	}
	if v.Metric() != memtype.Latency {
		t.Error("Toggle changed the metric")
	}
}

func TestDeselectAll(t *testing.T) {
	v := New()
	sched := &manualScheduler{}
	v.Mount(sched)

	for i := 0; i < 3; i++ {
		sched.fire()
	}
	gddr6 := v.State().Position("GDDR6")
	if gddr6 == 0 {
		t.Fatal("GDDR6 should have moved")
	}

	if err := v.SelectOnly(); err != nil {
		t.Fatal(err)
	}
	st := v.State()
	if len(st.Records) != 0 || len(st.Chart) != 0 || len(st.Selected) != 0 {
		t.Errorf("expected empty view, got %+v", st)
	}

	sched.fire()
	if got := v.State().Position("GDDR6"); got != gddr6 {
		t.Errorf("deselected position changed: %v -> %v", gddr6, got)
	}

	if err := v.Toggle("GDDR6"); err != nil {
		t.Fatal(err)
	}
	if got := v.State().Position("GDDR6"); got != gddr6 {
		t.Errorf("reselected record should resume at %v, got %v", gddr6, got)
	}

	sched.fire()
	if got := v.State().Position("GDDR6"); got <= gddr6 {
		t.Errorf("reselected record did not advance: %v", got)
	}
}

func TestNeverSelectedHasNoEntry(t *testing.T) {
	v := New()
	if err := v.SelectOnly("HBM3E"); err != nil {
		t.Fatal(err)
	}
	sched := &manualScheduler{}
	v.Mount(sched)
	sched.fire()

	st := v.State()
	if _, ok := st.Positions["GDDR5"]; ok {
		t.Error("unselected record should have no position entry")
	}
	if _, ok := st.Positions["HBM3E"]; !ok {
		t.Error("selected record should have a position entry")
	}
}

func TestMountRegistersSingleTask(t *testing.T) {
	v := New()
	sched := &manualScheduler{}
	v.Mount(sched)

	if sched.live() != 1 {
		t.Fatalf("live tasks = %d, want 1", sched.live())
	}
	if sched.tasks[0].interval != TickInterval {
		t.Errorf("interval = %v, want %v", sched.tasks[0].interval, TickInterval)
	}
	if !v.State().Mounted {
		t.Error("state should report mounted")
	}

	_ = v.Toggle("HBM3E")
	_ = v.Toggle("GDDR6")
	if sched.live() != 1 {
		t.Errorf("after selection changes live tasks = %d, want 1", sched.live())
	}
	if len(sched.tasks) != 3 {
		t.Errorf("expected a new registration per selection change, got %d", len(sched.tasks))
	}

	v.SetMetric(memtype.Latency)
	if len(sched.tasks) != 3 {
		t.Error("metric change should not re-register the task")
	}

	v.Unmount()
	if sched.live() != 0 {
		t.Errorf("after unmount live tasks = %d, want 0", sched.live())
	}
	if v.Mounted() {
		t.Error("Mounted() should be false after Unmount")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	v := New()
	sched := &manualScheduler{}
	v.Mount(sched)
	stale := sched.tasks[0].fn

	if err := v.Toggle("SRAM (L1 Cache)"); err != nil {
		t.Fatal(err)
	}
	before := v.State()

	// simulate a canceled callback that still fires once
	stale()

	after := v.State()
	if after.Version != before.Version {
		t.Error("stale tick changed state")
	}
	if _, ok := after.Positions["SRAM (L1 Cache)"]; ok {
		t.Error("stale tick advanced a deselected record")
	}
}

func TestUnmountKeepsPositions(t *testing.T) {
	v := New()
	sched := &manualScheduler{}
	v.Mount(sched)
	sched.fire()
	pos := v.State().Positions

	v.Unmount()
	sched.fire()

	if !reflect.DeepEqual(pos, v.State().Positions) {
		t.Error("positions changed after unmount")
	}
}

func TestUnmountNotifies(t *testing.T) {
	v := New()
	v.Mount(&manualScheduler{})

	var got []State
	unsubscribe := v.Subscribe(func(st State) {
		got = append(got, st)
	})
	defer unsubscribe()

	before := v.State().Version
	v.Unmount()
	if len(got) != 1 {
		t.Fatalf("listener called %d times, want 1", len(got))
	}
	if got[0].Mounted {
		t.Error("snapshot after Unmount should not be mounted")
	}
	if got[0].Version <= before {
		t.Errorf("version = %d, want > %d", got[0].Version, before)
	}

	v.Unmount()
	if len(got) != 1 {
		t.Error("unmounting an unmounted view should not notify")
	}
}

func TestManualSchedulerConcurrentCancel(t *testing.T) {
	sched := &manualScheduler{}
	v := New()
	v.Mount(sched)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = v.Toggle("HBM3E")
			sched.fire()
			_ = sched.live()
		}()
	}
	wg.Wait()

	if sched.live() != 1 {
		t.Errorf("live tasks = %d, want 1", sched.live())
	}
}

func TestSubscribe(t *testing.T) {
	v := New()
	var got []State
	unsubscribe := v.Subscribe(func(st State) {
		got = append(got, st)
	})

	_ = v.Toggle("HBM3E")
	v.SetMetric(memtype.PricePerGB)

	if len(got) != 2 {
		t.Fatalf("listener called %d times, want 2", len(got))
	}
	if got[0].IsSelected("HBM3E") {
		t.Error("first snapshot should reflect the toggle")
	}
	if got[1].Metric != memtype.PricePerGB {
		t.Error("second snapshot should reflect the metric")
	}
	if got[1].Version <= got[0].Version {
		t.Error("versions should increase")
	}

	unsubscribe()
	v.SelectAll()
	if len(got) != 2 {
		t.Error("listener called after unsubscribe")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	v := New()
	sched := &manualScheduler{}
	v.Mount(sched)
	sched.fire()

	st := v.State()
	st.Positions["HBM3E"] = 99
	st.Records[0].Name = "changed"

	again := v.State()
	if again.Positions["HBM3E"] == 99 {
		t.Error("snapshot positions alias view state")
	}
	if again.Records[0].Name != "HBM3E" {
		t.Error("snapshot records alias the dataset")
	}
}

func TestTickerScheduler(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	task := NewTickerScheduler().Every(5*time.Millisecond, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("ticker did not fire")
		}
		time.Sleep(time.Millisecond)
	}

	task.Cancel()
	task.Cancel()
	// allow an in-flight tick to finish
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	after := calls
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if calls != after {
		t.Errorf("ticker kept firing after Cancel: %d -> %d", after, calls)
	}
}
