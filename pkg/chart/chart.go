// Package chart turns filtered memory records into bar chart input.
package chart

import (
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
)

// Point is one bar of the chart
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Build maps each record to the value of the chosen metric, keeping order
func Build(records []memtype.Record, metric memtype.Metric) []Point {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		points = append(points, Point{Name: r.Name, Value: r.Value(metric)})
	}
	return points
}

// Rows converts points into the {name, <metricKey>: value} shape consumed by
// browser charting libraries
func Rows(points []Point, metric memtype.Metric) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		rows = append(rows, map[string]interface{}{
			"name":       p.Name,
			metric.Key(): p.Value,
		})
	}
	return rows
}

// Margin is the space reserved around the plot area
type Margin struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Config describes how the bar chart should be drawn
type Config struct {
	DataKey     string  `json:"dataKey"`
	Label       string  `json:"label"`
	Unit        string  `json:"unit"`
	Height      int     `json:"height"`
	Fill        string  `json:"fill"`
	GridDash    string  `json:"gridDash"`
	XAxisAngle  float64 `json:"xAxisAngle"`
	XAxisHeight int     `json:"xAxisHeight"`
	Margin      Margin  `json:"margin"`
	Tooltip     bool    `json:"tooltip"`
	Legend      bool    `json:"legend"`
}

// DefaultHeight is the fixed chart height in logical pixels
const DefaultHeight = 400

// DefaultConfig returns the chart configuration for a metric
func DefaultConfig(metric memtype.Metric) Config {
	return Config{
		DataKey:     metric.Key(),
		Label:       metric.Label(),
		Unit:        metric.Unit(),
		Height:      DefaultHeight,
		Fill:        "#3b82f6",
		GridDash:    "3 3",
		XAxisAngle:  -45,
		XAxisHeight: 80,
		Margin:      Margin{Left: 60, Right: 20, Top: 20, Bottom: 60},
		Tooltip:     true,
		Legend:      true,
	}
}

// Payload bundles configuration and rows for JSON clients
type Payload struct {
	Metric memtype.Metric           `json:"metric"`
	Config Config                   `json:"config"`
	Data   []map[string]interface{} `json:"data"`
}

// NewPayload builds the chart payload for the given records
func NewPayload(records []memtype.Record, metric memtype.Metric) Payload {
	return Payload{
		Metric: metric,
		Config: DefaultConfig(metric),
		Data:   Rows(Build(records, metric), metric),
	}
}
