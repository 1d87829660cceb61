package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// ReportData contains all data needed for report generation
type ReportData struct {
	State       view.State
	Config      chart.Config
	ChartSVG    template.HTML
	Highlights  []Highlight
	Total       int
	GeneratedAt time.Time
	SystemInfo  SystemInfo
	Upcoming    []string
	Disclaimer  string
}

// Highlight names the best selected record for one metric
type Highlight struct {
	Label string
	Name  string
	Value string
}

// Generator creates snapshot reports from a view state
type Generator struct {
	state      view.State
	systemInfo func() SystemInfo
	now        func() time.Time
}

// NewGenerator creates a report generator for st
func NewGenerator(st view.State) *Generator {
	return &Generator{
		state:      st,
		systemInfo: CollectSystemInfo,
		now:        time.Now,
	}
}

// GenerateHTML renders the snapshot as a standalone HTML document
func (g *Generator) GenerateHTML() (string, error) {
	data, err := g.loadReportData()
	if err != nil {
		return "", err
	}

	tmpl, err := loadHTMLTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (g *Generator) loadReportData() (*ReportData, error) {
	cfg := chart.DefaultConfig(g.state.Metric)

	var svg bytes.Buffer
	err := chart.RenderSVG(&svg, g.state.Chart, cfg, chart.DefaultWidth)
	if errors.Is(err, chart.ErrNoData) {
		svg.Reset()
		err = chart.Placeholder(&svg, chart.DefaultWidth, cfg.Height)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return &ReportData{
		State:       g.state,
		Config:      cfg,
		ChartSVG:    template.HTML(svg.String()), // #nosec G203 -- generated by the chart renderer
		Highlights:  highlights(g.state.Records),
		Total:       len(memtype.Names()),
		GeneratedAt: g.now(),
		SystemInfo:  g.systemInfo(),
		Upcoming:    memtype.Upcoming,
		Disclaimer:  memtype.Disclaimer,
	}, nil
}

// highlights picks the fastest, lowest latency and cheapest record
func highlights(records []memtype.Record) []Highlight {
	if len(records) == 0 {
		return nil
	}

	best := func(m memtype.Metric, better func(a, b float64) bool) Highlight {
		pick := records[0]
		for _, r := range records[1:] {
			if better(r.Value(m), pick.Value(m)) {
				pick = r
			}
		}
		return Highlight{
			Label: m.Label(),
			Name:  pick.Name,
			Value: chart.FormatValue(pick.Value(m)) + " " + m.Unit(),
		}
	}
	higher := func(a, b float64) bool { return a > b }
	lower := func(a, b float64) bool { return a < b }

	return []Highlight{
		best(memtype.Speed, higher),
		best(memtype.Latency, lower),
		best(memtype.PricePerGB, lower),
	}
}

func loadHTMLTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"num": chart.FormatValue,
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>GPU Memory Comparison - {{.Config.Label}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }
        h1, h2 { color: #1f2937; }
        .header {
            border-bottom: 3px solid #3b82f6;
            padding-bottom: 12px;
            margin-bottom: 24px;
        }
        .info-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 16px;
            margin: 20px 0;
        }
        .info-card {
            background-color: #f8f9fa;
            padding: 12px;
            border-radius: 4px;
            border-left: 4px solid #3b82f6;
        }
        .info-card h3 {
            margin: 0 0 6px 0;
            color: #666;
            font-size: 0.85em;
            text-transform: uppercase;
        }
        .info-card p { margin: 0; font-weight: 500; }
        table { width: 100%; border-collapse: collapse; }
        th, td {
            padding: 8px;
            text-align: left;
            border: 1px solid #d1d5db;
        }
        th { background-color: #f3f4f6; }
        .chart svg { width: 100%; }
        .muted { color: #4b5563; font-size: 0.9em; }
        .footer {
            margin-top: 40px;
            padding-top: 16px;
            border-top: 1px solid #e0e0e0;
            color: #666;
            font-size: 0.85em;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>GPU Memory Comparison</h1>
        <p>Metric: {{.Config.Label}} ({{.Config.Unit}}) | Selected: {{len .State.Records}} of {{.Total}}</p>
    </div>

    {{if .Highlights}}
    <div class="info-grid">
        {{range .Highlights}}
        <div class="info-card">
            <h3>Best {{.Label}}</h3>
            <p>{{.Name}} ({{.Value}})</p>
        </div>
        {{end}}
    </div>
    {{end}}

    <h2>Comparison Table</h2>
    {{if .State.Records}}
    <table>
        <thead>
            <tr>
                <th>Memory Type</th>
                <th>Speed (GB/s)</th>
                <th>Latency (ns)</th>
                <th>Price per GB ($)</th>
                <th>Key Features</th>
                <th>Applications</th>
            </tr>
        </thead>
        <tbody>
            {{range .State.Records}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{num .Speed}}</td>
                <td>{{num .Latency}}</td>
                <td>{{num .PricePerGB}}</td>
                <td>{{.KeyFeatures}}</td>
                <td>{{.Applications}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{else}}
    <p class="muted">No memory types selected.</p>
    {{end}}

    <h2>Comparison Chart: {{.Config.Label}}</h2>
    <div class="chart">{{.ChartSVG}}</div>

    <h2>Upcoming Technologies</h2>
    <p class="muted">HBM4 is in development and expected to offer significant improvements:</p>
    <ul class="muted">
        {{range .Upcoming}}<li>{{.}}</li>{{end}}
    </ul>

    <h2>Generated On</h2>
    <div class="info-grid">
        <div class="info-card">
            <h3>Host</h3>
            <p>{{.SystemInfo.Hostname}}</p>
        </div>
        <div class="info-card">
            <h3>OS</h3>
            <p>{{.SystemInfo.OS}} ({{.SystemInfo.Architecture}})</p>
        </div>
        <div class="info-card">
            <h3>CPU</h3>
            <p>{{.SystemInfo.CPUModel}} ({{.SystemInfo.CPUCores}} cores)</p>
        </div>
        <div class="info-card">
            <h3>Memory</h3>
            <p>{{.SystemInfo.TotalMemory}}</p>
        </div>
    </div>

    <div class="footer">
        <p>{{.Disclaimer}}</p>
        <p>Generated on {{formatTime .GeneratedAt}}</p>
    </div>
</body>
</html>
`
