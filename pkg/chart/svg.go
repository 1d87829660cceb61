package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to draw
var ErrNoData = errors.New("no chart data")

// Width bounds for rendered charts
const (
	DefaultWidth = 960
	MinWidth     = 320
	MaxWidth     = 4096
)

// ClampWidth keeps a requested width within renderable bounds
func ClampWidth(width int) int {
	switch {
	case width <= 0:
		return DefaultWidth
	case width < MinWidth:
		return MinWidth
	case width > MaxWidth:
		return MaxWidth
	}
	return width
}

// RenderSVG draws the points as an SVG bar chart of the given width
func RenderSVG(w io.Writer, points []Point, cfg Config, width int) error {
	if len(points) == 0 {
		return ErrNoData
	}
	width = ClampWidth(width)

	fill := drawing.ColorFromHex(strings.TrimPrefix(cfg.Fill, "#"))
	maxValue := 0.0
	bars := make([]gochart.Value, 0, len(points))
	for _, p := range points {
		maxValue = math.Max(maxValue, p.Value)
		bars = append(bars, gochart.Value{
			Label: p.Name,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		})
	}

	graph := gochart.BarChart{
		Width:      width,
		Height:     cfg.Height,
		BarWidth:   barWidth(width-cfg.Margin.Left-cfg.Margin.Right, len(points)),
		BarSpacing: barWidth(width-cfg.Margin.Left-cfg.Margin.Right, len(points)) / 2,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    cfg.Margin.Top,
				Left:   cfg.Margin.Left,
				Right:  cfg.Margin.Right,
				Bottom: cfg.Margin.Bottom,
			},
		},
		XAxis: gochart.Style{
			TextRotationDegrees: cfg.XAxisAngle,
			FontSize:            9,
		},
		YAxis: gochart.YAxis{
			Name:           fmt.Sprintf("%s (%s)", cfg.Label, cfg.Unit),
			Range:          &gochart.ContinuousRange{Min: 0, Max: NiceCeil(maxValue)},
			ValueFormatter: unitFormatter(cfg.Unit),
			GridMajorStyle: gochart.Style{
				StrokeColor:     drawing.ColorFromHex("cccccc"),
				StrokeWidth:     1,
				StrokeDashArray: dashArray(cfg.GridDash),
			},
		},
		Bars: bars,
	}

	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// NiceCeil rounds v up to 1, 2 or 5 times a power of ten
func NiceCeil(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	f := v / exp
	for _, nice := range []float64{1, 2, 5, 10} {
		if f <= nice {
			return nice * exp
		}
	}
	return 10 * exp
}

func barWidth(plotWidth, bars int) int {
	if bars == 0 {
		return 0
	}
	// one bar plus half a bar of spacing per slot
	width := int(float64(plotWidth) / (float64(bars) * 1.5))
	if width < 8 {
		width = 8
	}
	if width > 120 {
		width = 120
	}
	return width
}

func unitFormatter(unit string) gochart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		return FormatValue(f) + " " + unit
	}
}

// FormatValue prints a chart value without needless decimals
func FormatValue(v float64) string {
	if v == math.Trunc(v) || math.Abs(v) >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func dashArray(pattern string) []float64 {
	var out []float64
	for _, field := range strings.Fields(pattern) {
		var f float64
		if _, err := fmt.Sscanf(field, "%g", &f); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// Placeholder is drawn in place of a chart when nothing is selected
func Placeholder(w io.Writer, width, height int) error {
	width = ClampWidth(width)
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
			`<rect width="100%%" height="100%%" fill="#f8f9fa"/>`+
			`<text x="50%%" y="50%%" text-anchor="middle" fill="#666" font-family="sans-serif">`+
			`No memory types selected</text></svg>`,
		width, height)
	return err
}
