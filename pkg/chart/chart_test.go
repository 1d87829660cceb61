package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
)

func pick(t *testing.T, names ...string) []memtype.Record {
	t.Helper()
	var out []memtype.Record
	for _, n := range names {
		r, err := memtype.Lookup(n)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, r)
	}
	return out
}

func TestBuildLatencyScenario(t *testing.T) {
	records := pick(t, "HBM3E", "SRAM (L1 Cache)")

	got := Build(records, memtype.Latency)
	want := []Point{
		{Name: "HBM3E", Value: 10},
		{Name: "SRAM (L1 Cache)", Value: 1},
	}

	if len(got) != len(want) {
		t.Fatalf("Build() returned %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildOnePointPerRecord(t *testing.T) {
	records := memtype.All()
	for _, m := range memtype.Metrics {
		points := Build(records, m)
		if len(points) != len(records) {
			t.Fatalf("%s: %d points for %d records", m, len(points), len(records))
		}
		for i, p := range points {
			if p.Name != records[i].Name {
				t.Errorf("%s: point %d name %q, want %q", m, i, p.Name, records[i].Name)
			}
			if p.Value != records[i].Value(m) {
				t.Errorf("%s: point %d value %v, want %v", m, i, p.Value, records[i].Value(m))
			}
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	points := Build(nil, memtype.Speed)
	if points == nil || len(points) != 0 {
		t.Errorf("Build(nil) = %#v, want empty non-nil slice", points)
	}
}

func TestRowsUseMetricKey(t *testing.T) {
	rows := Rows(Build(pick(t, "GDDR5"), memtype.PricePerGB), memtype.PricePerGB)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["name"] != "GDDR5" {
		t.Errorf("name = %v", rows[0]["name"])
	}
	if rows[0]["pricePerGB"] != 5.0 {
		t.Errorf("pricePerGB = %v", rows[0]["pricePerGB"])
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(memtype.PricePerGB)
	if cfg.Unit != "$/GB" {
		t.Errorf("Unit = %q, want $/GB", cfg.Unit)
	}
	if cfg.DataKey != "pricePerGB" {
		t.Errorf("DataKey = %q", cfg.DataKey)
	}
	if cfg.Height != 400 {
		t.Errorf("Height = %d, want 400", cfg.Height)
	}
	if !cfg.Tooltip || !cfg.Legend {
		t.Error("tooltip and legend should be enabled")
	}
}

func TestNiceCeil(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{25, 50},
		{40, 50},
		{1200, 2000},
		{10000, 10000},
		{10001, 20000},
	}

	for _, tt := range tests {
		if got := NiceCeil(tt.in); got != tt.want {
			t.Errorf("NiceCeil(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampWidth(t *testing.T) {
	if got := ClampWidth(0); got != DefaultWidth {
		t.Errorf("ClampWidth(0) = %d", got)
	}
	if got := ClampWidth(10); got != MinWidth {
		t.Errorf("ClampWidth(10) = %d", got)
	}
	if got := ClampWidth(100000); got != MaxWidth {
		t.Errorf("ClampWidth(100000) = %d", got)
	}
	if got := ClampWidth(800); got != 800 {
		t.Errorf("ClampWidth(800) = %d", got)
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	points := Build(memtype.All(), memtype.Speed)

	if err := RenderSVG(&buf, points, DefaultConfig(memtype.Speed), 800); err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("output is not an SVG document")
	}
	if !strings.Contains(out, "HBM3E") {
		t.Error("output is missing a bar label")
	}
}

func TestRenderSVGNoData(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSVG(&buf, nil, DefaultConfig(memtype.Speed), 800)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("RenderSVG(nil) error = %v, want ErrNoData", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written without data")
	}
}

func TestPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	if err := Placeholder(&buf, 500, DefaultHeight); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `width="500" height="400"`) {
		t.Errorf("unexpected placeholder: %s", buf.String())
	}
}
