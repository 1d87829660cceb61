package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// errorResponse is the JSON body of a failed request
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, memtype.ErrUnknownRecord) || errors.Is(err, memtype.ErrUnknownMetric) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// recordsHandler returns the whole dataset
func recordsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, memtype.All())
}

// viewFromQuery builds a view from ?metric= and repeated ?name= parameters.
// A missing name parameter selects everything; name= with no value selects
// nothing.
func viewFromQuery(q url.Values) (*view.View, error) {
	v := view.New()

	if metric := q.Get("metric"); metric != "" {
		m, err := memtype.ParseMetric(metric)
		if err != nil {
			return nil, err
		}
		v.SetMetric(m)
	}

	if values, ok := q["name"]; ok {
		names := make([]string, 0, len(values))
		for _, n := range values {
			if n != "" {
				names = append(names, n)
			}
		}
		if err := v.SelectOnly(names...); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// chartHandler returns the chart configuration and rows as JSON
func chartHandler(w http.ResponseWriter, r *http.Request) {
	v, err := viewFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chart.NewPayload(v.Filtered(), v.Metric()))
}

// chartSVGHandler renders the bar chart as SVG
func chartSVGHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := viewFromQuery(q)
	if err != nil {
		writeError(w, err)
		return
	}

	width := chart.DefaultWidth
	if ws := q.Get("width"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid width: " + ws})
			return
		}
		width = n
	}

	metric := v.Metric()
	points := chart.Build(v.Filtered(), metric)

	var buf bytes.Buffer
	err = chart.RenderSVG(&buf, points, chart.DefaultConfig(metric), width)
	if errors.Is(err, chart.ErrNoData) {
		buf.Reset()
		err = chart.Placeholder(&buf, width, chart.DefaultHeight)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
