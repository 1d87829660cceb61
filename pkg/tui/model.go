// Package tui provides the Bubble Tea terminal interface.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

const (
	defaultWidth = 100
	nameWidth    = 16
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8C8C8C")).MarginTop(1)
	onStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(0, 1)
	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151")).
			Background(lipgloss.Color("#E5E7EB")).
			Padding(0, 1)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	laneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	ballStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).MarginTop(1)
)

// Model implements the Bubble Tea comparison UI
type Model struct {
	view   *view.View
	sched  *loopScheduler
	table  table.Model
	width  int
	closed bool
}

// NewModel constructs a terminal UI around v
func NewModel(v *view.View) *Model {
	m := &Model{
		view:  v,
		sched: newLoopScheduler(),
		width: defaultWidth,
	}
	m.initTable()
	m.refreshTable()
	return m
}

func (m *Model) initTable() {
	columns := []table.Column{
		{Title: "Memory Type", Width: nameWidth},
		{Title: "Speed (GB/s)", Width: 12},
		{Title: "Latency (ns)", Width: 12},
		{Title: "Price per GB ($)", Width: 16},
		{Title: "Key Features", Width: 40},
		{Title: "Applications", Width: 40},
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithHeight(len(memtype.Names())+1),
		table.WithFocused(false),
	)
}

func (m *Model) refreshTable() {
	st := m.view.State()
	rows := make([]table.Row, 0, len(st.Records))
	for _, r := range st.Records {
		rows = append(rows, table.Row{
			r.Name,
			chart.FormatValue(r.Speed),
			chart.FormatValue(r.Latency),
			chart.FormatValue(r.PricePerGB),
			r.KeyFeatures,
			r.Applications,
		})
	}
	m.table.SetRows(rows)
}

// Run starts a full screen program for a fresh view and blocks until quit
func Run() error {
	p := tea.NewProgram(NewModel(view.New()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.view.Mount(m.sched)
	return m.sched.wait()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		if m.closed {
			return m, nil
		}
		msg.fn()
		return m, m.sched.wait()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.closed = true
		m.view.Unmount()
		return m, tea.Quit
	case "a":
		m.view.SelectAll()
	case "s":
		m.view.SetMetric(memtype.Speed)
	case "l":
		m.view.SetMetric(memtype.Latency)
	case "p":
		m.view.SetMetric(memtype.PricePerGB)
	case "tab":
		next := (int(m.view.Metric()) + 1) % len(memtype.Metrics)
		m.view.SetMetric(memtype.Metrics[next])
	default:
		names := memtype.Names()
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(names) {
			_ = m.view.Toggle(names[key[0]-'1'])
		}
	}
	m.refreshTable()
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.closed {
		return ""
	}
	st := m.view.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("GPU Memory Comparison"))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Select Memory Types:"))
	b.WriteString("\n")
	b.WriteString(m.renderToggles(st))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Comparison Table:"))
	b.WriteString("\n")
	if len(st.Records) == 0 {
		b.WriteString(mutedStyle.Render("  no memory types selected"))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render(fmt.Sprintf("Comparison Chart: %s (%s)", st.Metric.Label(), st.Unit)))
	b.WriteString("\n")
	b.WriteString(renderBars(st.Chart, st.Unit, m.width))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Latency Visualization:"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("(Logarithmic scale: movement speed is inversely proportional to log(latency).)"))
	b.WriteString("\n")
	b.WriteString(renderLanes(st, m.width))

	b.WriteString(helpStyle.Render("1-7 toggle • a all • s/l/p or tab metric • q quit"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(memtype.Disclaimer))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderToggles(st view.State) string {
	parts := make([]string, 0, len(memtype.Names()))
	for i, name := range memtype.Names() {
		label := fmt.Sprintf("%d %s", i+1, name)
		if st.IsSelected(name) {
			parts = append(parts, onStyle.Render(label))
		} else {
			parts = append(parts, offStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func renderBars(points []chart.Point, unit string, width int) string {
	if len(points) == 0 {
		return mutedStyle.Render("  no memory types selected") + "\n"
	}

	maxValue := 0.0
	for _, p := range points {
		maxValue = math.Max(maxValue, p.Value)
	}
	barSpace := width - nameWidth - 20
	if barSpace < 10 {
		barSpace = 10
	}

	var b strings.Builder
	for _, p := range points {
		n := 0
		if maxValue > 0 {
			n = int(math.Round(p.Value / maxValue * float64(barSpace)))
		}
		fmt.Fprintf(&b, "%-*s %s %s %s\n",
			nameWidth, truncate(p.Name, nameWidth),
			barStyle.Render(strings.Repeat("█", n)),
			chart.FormatValue(p.Value), unit)
	}
	return b.String()
}

func renderLanes(st view.State, width int) string {
	if len(st.Records) == 0 {
		return mutedStyle.Render("  no memory types selected") + "\n"
	}

	laneWidth := width - nameWidth - 14
	if laneWidth < 10 {
		laneWidth = 10
	}

	var b strings.Builder
	for _, r := range st.Records {
		at := LaneIndex(st.Position(r.Name), laneWidth)
		lane := laneStyle.Render(strings.Repeat("─", at)) +
			ballStyle.Render("●") +
			laneStyle.Render(strings.Repeat("─", laneWidth-at-1))
		fmt.Fprintf(&b, "%*s %s %s ns\n",
			nameWidth, truncate(r.Name, nameWidth), lane, chart.FormatValue(r.Latency))
	}
	return b.String()
}

// LaneIndex maps a position in [0, 100) to a cell of a lane
func LaneIndex(position float64, laneWidth int) int {
	if laneWidth <= 1 {
		return 0
	}
	at := int(position / view.MaxPosition * float64(laneWidth))
	if at < 0 {
		return 0
	}
	if at > laneWidth-1 {
		return laneWidth - 1
	}
	return at
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
