package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

const (
	nameColumnWidth = 140
	maxBarWidth     = 600
	barHeight       = 22
)

var tableHeaders = []string{
	"Memory Type", "Speed (GB/s)", "Latency (ns)", "Price per GB ($)", "Key Features", "Applications",
}

var columnWidths = []float32{nameColumnWidth, 110, 110, 130, 320, 320}

// Comparison is the desktop rendering of a view
type Comparison struct {
	view      *view.View
	scheduler view.Scheduler
	content   fyne.CanvasObject

	checks    []*widget.Check
	metric    *widget.Select
	table     *widget.Table
	chartCard *widget.Card
	chartBox  *fyne.Container
	lanes     *fyne.Container
	balls     map[string]*widget.ProgressBar

	state       view.State
	layoutKey   string
	unsubscribe func()
}

// NewComparison builds the widgets for v
func NewComparison(v *view.View) *Comparison {
	c := &Comparison{
		view:      v,
		scheduler: newMainThreadScheduler(),
		balls:     make(map[string]*widget.ProgressBar),
	}
	c.build()
	c.render(v.State())
	return c
}

// Content returns the root canvas object
func (c *Comparison) Content() fyne.CanvasObject {
	return c.content
}

// Start subscribes to the view and starts the animation
func (c *Comparison) Start() {
	if c.unsubscribe == nil {
		c.unsubscribe = c.view.Subscribe(c.render)
	}
	c.view.Mount(c.scheduler)
}

// Stop cancels the animation and detaches from the view
func (c *Comparison) Stop() {
	c.view.Unmount()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Comparison) build() {
	names := memtype.Names()
	toggles := container.NewGridWithColumns(4)
	for _, name := range names {
		name := name
		check := widget.NewCheck(name, func(checked bool) {
			if checked != c.view.State().IsSelected(name) {
				_ = c.view.Toggle(name)
			}
		})
		c.checks = append(c.checks, check)
		toggles.Add(check)
	}

	labels := make([]string, 0, len(memtype.Metrics))
	for _, m := range memtype.Metrics {
		labels = append(labels, m.Label())
	}
	c.metric = widget.NewSelect(labels, func(label string) {
		if m, ok := metricByLabel(label); ok && m != c.view.Metric() {
			c.view.SetMetric(m)
		}
	})

	c.table = widget.NewTable(
		func() (int, int) { return len(c.state.Records) + 1, len(tableHeaders) },
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			label.SetText(c.cellText(id.Row, id.Col))
		},
	)
	for i, w := range columnWidths {
		c.table.SetColumnWidth(i, w)
	}
	tableBox := container.NewGridWrap(fyne.NewSize(1200, 300), c.table)

	c.chartBox = container.NewVBox()
	c.chartCard = widget.NewCard("Comparison Chart", "",
		container.NewVBox(
			container.NewHBox(widget.NewLabel("Select Metric:"), c.metric),
			c.chartBox,
		),
	)

	c.lanes = container.NewVBox()

	upcoming := container.NewVBox(
		widget.NewLabel("HBM4 is in development and expected to offer significant improvements:"),
	)
	for _, note := range memtype.Upcoming {
		upcoming.Add(widget.NewLabel("• " + note))
	}

	disclaimer := widget.NewLabel(memtype.Disclaimer)
	disclaimer.Wrapping = fyne.TextWrapWord

	c.content = container.NewVBox(
		widget.NewLabelWithStyle("GPU Memory Comparison", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewCard("Select Memory Types", "", toggles),
		widget.NewCard("Comparison Table", "", tableBox),
		c.chartCard,
		widget.NewCard("Latency Visualization",
			"Logarithmic scale: movement speed is inversely proportional to log(latency).",
			c.lanes),
		widget.NewCard("Upcoming Technologies", "", upcoming),
		disclaimer,
	)
}

func (c *Comparison) cellText(row, col int) string {
	if row == 0 {
		return tableHeaders[col]
	}
	if row-1 >= len(c.state.Records) {
		return ""
	}
	r := c.state.Records[row-1]
	switch col {
	case 0:
		return r.Name
	case 1:
		return chart.FormatValue(r.Speed)
	case 2:
		return chart.FormatValue(r.Latency)
	case 3:
		return chart.FormatValue(r.PricePerGB)
	case 4:
		return r.KeyFeatures
	default:
		return r.Applications
	}
}

// render syncs the widgets with st. It runs on the fyne main goroutine.
func (c *Comparison) render(st view.State) {
	c.state = st

	for i, name := range memtype.Names() {
		if c.checks[i].Checked != st.IsSelected(name) {
			c.checks[i].SetChecked(st.IsSelected(name))
		}
	}
	if c.metric.Selected != st.Metric.Label() {
		c.metric.SetSelected(st.Metric.Label())
	}

	if key := layoutKey(st); key != c.layoutKey {
		c.layoutKey = key
		c.table.Refresh()
		c.chartCard.SetTitle(fmt.Sprintf("Comparison Chart: %s (%s)", st.Metric.Label(), st.Unit))
		c.rebuildChart(st.Chart, st.Unit)
		c.rebuildLanes(st.Records)
	}

	for name, ball := range c.balls {
		ball.SetValue(st.Position(name))
	}
}

func (c *Comparison) rebuildChart(points []chart.Point, unit string) {
	c.chartBox.RemoveAll()
	if len(points) == 0 {
		c.chartBox.Add(widget.NewLabel("No memory types selected"))
		return
	}

	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	for _, p := range points {
		bar := canvas.NewRectangle(BarColor())
		bar.SetMinSize(fyne.NewSize(BarWidth(p.Value, maxValue, maxBarWidth), barHeight))
		c.chartBox.Add(container.NewHBox(
			fixedWidth(widget.NewLabel(p.Name)),
			bar,
			widget.NewLabel(chart.FormatValue(p.Value)+" "+unit),
		))
	}
}

func (c *Comparison) rebuildLanes(records []memtype.Record) {
	c.lanes.RemoveAll()
	c.balls = make(map[string]*widget.ProgressBar, len(records))
	if len(records) == 0 {
		c.lanes.Add(widget.NewLabel("No memory types selected"))
		return
	}

	for _, r := range records {
		ball := widget.NewProgressBar()
		ball.Max = view.MaxPosition
		ball.TextFormatter = func() string { return "" }
		c.balls[r.Name] = ball
		track := canvas.NewRectangle(LaneColor())
		track.CornerRadius = 4
		c.lanes.Add(container.NewBorder(nil, nil,
			fixedWidth(widget.NewLabel(r.Name)),
			widget.NewLabel(chart.FormatValue(r.Latency)+" ns"),
			container.NewStack(track, ball),
		))
	}
}

// BarWidth scales value against the largest value in the chart
func BarWidth(value, maxValue float64, full float32) float32 {
	if maxValue <= 0 || value <= 0 {
		return 0
	}
	return float32(value/maxValue) * full
}

func fixedWidth(obj fyne.CanvasObject) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(nameColumnWidth, obj.MinSize().Height), obj)
}

func layoutKey(st view.State) string {
	return st.Metric.Key() + "|" + strings.Join(st.Selected, ",")
}

func metricByLabel(label string) (memtype.Metric, bool) {
	for _, m := range memtype.Metrics {
		if m.Label() == label {
			return m, true
		}
	}
	return 0, false
}
