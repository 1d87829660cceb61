package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// PageData contains everything the page template needs
type PageData struct {
	State      view.State
	Records    []memtype.Record
	Metrics    []memtype.Metric
	ChartSVG   template.HTML
	Upcoming   []string
	Disclaimer string
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"selected": func(st view.State, name string) bool { return st.IsSelected(name) },
	"isMetric": func(a, b memtype.Metric) bool { return a == b },
	"num":      chart.FormatValue,
}).Parse(pageHTML))

// NewPageData renders the chart for st and collects the template inputs
func NewPageData(st view.State) (PageData, error) {
	var buf bytes.Buffer
	err := chart.RenderSVG(&buf, st.Chart, chart.DefaultConfig(st.Metric), chart.DefaultWidth)
	if errors.Is(err, chart.ErrNoData) {
		buf.Reset()
		err = chart.Placeholder(&buf, chart.DefaultWidth, chart.DefaultHeight)
	}
	if err != nil {
		return PageData{}, err
	}

	return PageData{
		State:      st,
		Records:    memtype.All(),
		Metrics:    memtype.Metrics,
		ChartSVG:   template.HTML(buf.String()), // #nosec G203 -- generated by the chart renderer
		Upcoming:   memtype.Upcoming,
		Disclaimer: memtype.Disclaimer,
	}, nil
}

// pageHandler renders the initial page for a fresh view
func (s *Server) pageHandler(w http.ResponseWriter, _ *http.Request) {
	data, err := NewPageData(view.New().State())
	if err != nil {
		s.logger.Printf("failed to prepare page: %v", err)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Printf("failed to execute template: %v", err)
		http.Error(w, fmt.Sprintf("failed to render page: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>GPU Memory Comparison</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            color: #333;
            max-width: 1152px;
            margin: 0 auto;
            padding: 16px;
        }
        h1 { font-size: 1.9em; }
        h2 { font-size: 1.25em; margin-bottom: 8px; }
        section { margin-bottom: 32px; }
        .toggles { display: flex; flex-wrap: wrap; gap: 8px; }
        .toggle {
            padding: 4px 12px;
            border: none;
            border-radius: 4px;
            cursor: pointer;
            background-color: #e5e7eb;
            color: #374151;
        }
        .toggle.on { background-color: #3b82f6; color: white; }
        .table-wrap { overflow-x: auto; }
        table { min-width: 100%; border-collapse: collapse; border: 1px solid #d1d5db; }
        th, td { padding: 8px 16px; border: 1px solid #d1d5db; }
        thead tr { background-color: #f3f4f6; }
        #chart svg { width: 100%; height: 400px; }
        .lane-row { display: flex; align-items: center; margin-bottom: 16px; }
        .lane-name { width: 128px; text-align: right; margin-right: 16px; }
        .lane {
            flex-grow: 1;
            height: 24px;
            background-color: #e5e7eb;
            border-radius: 9999px;
            position: relative;
            overflow: hidden;
        }
        .ball {
            position: absolute;
            top: 0;
            width: 24px;
            height: 24px;
            border-radius: 9999px;
            background-color: #3b82f6;
        }
        .lane-latency { margin-left: 16px; width: 64px; }
        .muted { font-size: 0.875em; color: #4b5563; }
        .footer { font-size: 0.875em; color: #6b7280; }
    </style>
</head>
<body>
    <h1>GPU Memory Comparison</h1>

    <section>
        <h2>Select Memory Types:</h2>
        <div class="toggles" id="toggles">
            {{range .Records}}
            <button class="toggle{{if selected $.State .Name}} on{{end}}" data-name="{{.Name}}">{{.Name}}</button>
            {{end}}
        </div>
    </section>

    <section>
        <h2>Comparison Table:</h2>
        <div class="table-wrap">
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
                <tbody id="rows">
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
        </div>
    </section>

    <section>
        <h2>Comparison Chart:</h2>
        <div>
            <label for="metric">Select Metric:</label>
            <select id="metric">
                {{range .Metrics}}
                <option value="{{.Key}}"{{if isMetric . $.State.Metric}} selected{{end}}>{{.Label}}</option>
                {{end}}
            </select>
        </div>
        <div id="chart">{{.ChartSVG}}</div>
    </section>

    <section>
        <h2>Latency Visualization:</h2>
        <p class="muted">(Logarithmic scale: movement speed is inversely proportional to log(latency).)</p>
        <div id="lanes">
            {{range .State.Records}}
            <div class="lane-row">
                <span class="lane-name">{{.Name}}</span>
                <div class="lane"><div class="ball" data-name="{{.Name}}" style="left: calc(0% - 1.5rem)"></div></div>
                <span class="lane-latency">{{num .Latency}} ns</span>
            </div>
            {{end}}
        </div>
    </section>

    <section>
        <h2>Upcoming Technologies:</h2>
        <p class="muted">HBM4 is in development and expected to offer significant improvements:</p>
        <ul class="muted">
            {{range .Upcoming}}<li>{{.}}</li>{{end}}
        </ul>
    </section>

    <section class="footer">
        <p>{{.Disclaimer}}</p>
    </section>

    <script>
    (function () {
        var proto = location.protocol === "https:" ? "wss://" : "ws://";
        var socket = new WebSocket(proto + location.host + "/ws");
        var chartKey = "";

        function send(cmd) {
            if (socket.readyState === WebSocket.OPEN) {
                socket.send(JSON.stringify(cmd));
            }
        }

        document.querySelectorAll(".toggle").forEach(function (btn) {
            btn.addEventListener("click", function () {
                send({op: "toggle", name: btn.dataset.name});
            });
        });
        document.getElementById("metric").addEventListener("change", function (e) {
            send({op: "metric", metric: e.target.value});
        });

        function cell(text) {
            var td = document.createElement("td");
            td.textContent = text;
            return td;
        }

        function renderStatic(st) {
            document.querySelectorAll(".toggle").forEach(function (btn) {
                btn.classList.toggle("on", st.selected.indexOf(btn.dataset.name) >= 0);
            });
            document.getElementById("metric").value = st.metric;

            var rows = document.getElementById("rows");
            rows.innerHTML = "";
            var lanes = document.getElementById("lanes");
            lanes.innerHTML = "";
            st.records.forEach(function (r) {
                var tr = document.createElement("tr");
                [r.name, r.speed, r.latency, r.pricePerGB, r.keyFeatures, r.applications]
                    .forEach(function (v) { tr.appendChild(cell(v)); });
                rows.appendChild(tr);

                var row = document.createElement("div");
                row.className = "lane-row";
                var name = document.createElement("span");
                name.className = "lane-name";
                name.textContent = r.name;
                var lane = document.createElement("div");
                lane.className = "lane";
                var ball = document.createElement("div");
                ball.className = "ball";
                ball.dataset.name = r.name;
                lane.appendChild(ball);
                var lat = document.createElement("span");
                lat.className = "lane-latency";
                lat.textContent = r.latency + " ns";
                row.appendChild(name);
                row.appendChild(lane);
                row.appendChild(lat);
                lanes.appendChild(row);
            });

            var params = new URLSearchParams();
            params.set("metric", st.metric);
            if (st.selected.length === 0) {
                params.append("name", "");
            }
            st.selected.forEach(function (n) { params.append("name", n); });
            var box = document.getElementById("chart");
            params.set("width", Math.round(box.clientWidth) || 960);
            fetch("/api/chart.svg?" + params.toString())
                .then(function (res) { return res.text(); })
                .then(function (svg) { box.innerHTML = svg; });
        }

        function renderPositions(st) {
            document.querySelectorAll(".ball").forEach(function (ball) {
                var pos = (st.positions && st.positions[ball.dataset.name]) || 0;
                ball.style.left = "calc(" + pos + "% - 1.5rem)";
            });
        }

        socket.addEventListener("message", function (ev) {
            var msg = JSON.parse(ev.data);
            if (msg.type === "error") {
                console.warn(msg.error);
                return;
            }
            var st = msg.state;
            var key = st.metric + "|" + st.selected.join(",");
            if (key !== chartKey) {
                chartKey = key;
                renderStatic(st);
            }
            renderPositions(st);
        });
    })();
    </script>
</body>
</html>
`
