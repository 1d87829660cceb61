package gui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

type manualScheduler struct {
	fns []func()
}

type manualTask struct{}

func (manualTask) Cancel() {}

func (s *manualScheduler) Every(_ time.Duration, fn func()) view.Task {
	s.fns = append(s.fns, fn)
	return manualTask{}
}

func (s *manualScheduler) fire() {
	s.fns[len(s.fns)-1]()
}

func TestComparisonInitialState(t *testing.T) {
	test.NewTempApp(t)
	c := NewComparison(view.New())

	for i, check := range c.checks {
		if !check.Checked {
			t.Errorf("check %d should start checked", i)
		}
	}
	if c.metric.Selected != "Speed" {
		t.Errorf("metric = %q, want Speed", c.metric.Selected)
	}
	if rows, cols := c.table.Length(); rows != 8 || cols != 6 {
		t.Errorf("table size = %dx%d, want 8x6", rows, cols)
	}
	if len(c.balls) != 7 {
		t.Errorf("got %d lanes, want 7", len(c.balls))
	}
	if c.chartCard.Title != "Comparison Chart: Speed (GB/s)" {
		t.Errorf("chart title = %q", c.chartCard.Title)
	}
}

func TestComparisonWidgetsDriveView(t *testing.T) {
	test.NewTempApp(t)
	v := view.New()
	c := NewComparison(v)
	c.scheduler = &manualScheduler{}
	c.Start()
	defer c.Stop()

	c.checks[0].SetChecked(false)
	if v.State().IsSelected("HBM3E") {
		t.Error("unchecking should deselect HBM3E")
	}
	if len(c.balls) != 6 {
		t.Errorf("got %d lanes, want 6", len(c.balls))
	}
	if rows, _ := c.table.Length(); rows != 7 {
		t.Errorf("table rows = %d, want 7", rows)
	}

	c.metric.SetSelected("Price per GB")
	if v.Metric() != memtype.PricePerGB {
		t.Errorf("metric = %v, want pricePerGB", v.Metric())
	}
	if c.chartCard.Title != "Comparison Chart: Price per GB ($/GB)" {
		t.Errorf("chart title = %q", c.chartCard.Title)
	}
}

func TestComparisonFollowsView(t *testing.T) {
	test.NewTempApp(t)
	v := view.New()
	c := NewComparison(v)
	c.scheduler = &manualScheduler{}
	c.Start()
	defer c.Stop()

	if err := v.SelectOnly("GDDR5"); err != nil {
		t.Fatal(err)
	}
	for i, name := range memtype.Names() {
		if c.checks[i].Checked != (name == "GDDR5") {
			t.Errorf("check %s = %v", name, c.checks[i].Checked)
		}
	}

	if err := v.SelectOnly(); err != nil {
		t.Fatal(err)
	}
	if len(c.balls) != 0 {
		t.Errorf("empty selection should have no lanes, got %d", len(c.balls))
	}
	label, ok := c.chartBox.Objects[0].(*widget.Label)
	if !ok || label.Text != "No memory types selected" {
		t.Error("empty selection should show the chart placeholder")
	}
}

func TestComparisonAnimation(t *testing.T) {
	test.NewTempApp(t)
	v := view.New()
	c := NewComparison(v)
	sched := &manualScheduler{}
	c.scheduler = sched
	c.Start()
	defer c.Stop()

	sched.fire()
	for name, ball := range c.balls {
		if ball.Value <= 0 {
			t.Errorf("%s did not move", name)
		}
		if ball.Max != view.MaxPosition {
			t.Errorf("%s max = %v", name, ball.Max)
		}
	}
	if c.balls["SRAM (L1 Cache)"].Value <= c.balls["GDDR5"].Value {
		t.Error("lower latency should move faster")
	}
}

func TestComparisonLaneTracks(t *testing.T) {
	test.NewTempApp(t)
	c := NewComparison(view.New())

	if len(c.lanes.Objects) != len(memtype.Names()) {
		t.Fatalf("got %d lanes, want %d", len(c.lanes.Objects), len(memtype.Names()))
	}
	for i, obj := range c.lanes.Objects {
		row, ok := obj.(*fyne.Container)
		if !ok {
			t.Fatalf("lane %d is %T", i, obj)
		}
		stack, ok := row.Objects[0].(*fyne.Container)
		if !ok || len(stack.Objects) != 2 {
			t.Fatalf("lane %d should stack a track and a progress bar", i)
		}
		track, ok := stack.Objects[0].(*canvas.Rectangle)
		if !ok || track.FillColor != LaneColor() {
			t.Errorf("lane %d track should use LaneColor", i)
		}
		if _, ok := stack.Objects[1].(*widget.ProgressBar); !ok {
			t.Errorf("lane %d should draw the progress bar over the track", i)
		}
	}
}

func TestComparisonStopDetaches(t *testing.T) {
	test.NewTempApp(t)
	v := view.New()
	c := NewComparison(v)
	c.scheduler = &manualScheduler{}
	c.Start()
	c.Stop()

	if v.Mounted() {
		t.Error("Stop should unmount the view")
	}
	_ = v.Toggle("HBM3E")
	if !c.checks[0].Checked {
		t.Error("stopped comparison should ignore view changes")
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		value, max float64
		want       float32
	}{
		{10, 10, 600},
		{5, 10, 300},
		{0, 10, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := BarWidth(tt.value, tt.max, maxBarWidth); got != tt.want {
			t.Errorf("BarWidth(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}
