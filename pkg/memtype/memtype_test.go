package memtype

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range Names() {
		if seen[name] {
			t.Errorf("duplicate record name %q", name)
		}
		seen[name] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected 7 records, got %d", len(seen))
	}
}

func TestLatencyPositive(t *testing.T) {
	for _, r := range All() {
		if r.Latency <= 0 {
			t.Errorf("%s: latency %v is not positive", r.Name, r.Latency)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	first[0].Name = "mutated"
	first[0].Speed = -1

	again := All()
	if again[0].Name != "HBM3E" || again[0].Speed != 1200 {
		t.Errorf("dataset was mutated through All(): %+v", again[0])
	}
}

func TestLookup(t *testing.T) {
	r, err := Lookup("SRAM (L1 Cache)")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if r.Latency != 1 || r.PricePerGB != 10000 {
		t.Errorf("unexpected record: %+v", r)
	}

	if _, err := Lookup("HBM4"); !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("Lookup(HBM4) error = %v, want ErrUnknownRecord", err)
	}
	if Exists("HBM4") {
		t.Error("Exists(HBM4) = true")
	}
}

func TestRecordValue(t *testing.T) {
	r, _ := Lookup("GDDR6X")

	tests := []struct {
		metric Metric
		want   float64
	}{
		{Speed, 1008},
		{Latency, 12},
		{PricePerGB, 15},
	}

	for _, tt := range tests {
		t.Run(tt.metric.Key(), func(t *testing.T) {
			if got := r.Value(tt.metric); got != tt.want {
				t.Errorf("Value(%s) = %v, want %v", tt.metric, got, tt.want)
			}
		})
	}
}

func TestMetricUnits(t *testing.T) {
	tests := []struct {
		metric Metric
		key    string
		label  string
		unit   string
	}{
		{Speed, "speed", "Speed", "GB/s"},
		{Latency, "latency", "Latency", "ns"},
		{PricePerGB, "pricePerGB", "Price per GB", "$/GB"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := tt.metric.Key(); got != tt.key {
				t.Errorf("Key() = %q, want %q", got, tt.key)
			}
			if got := tt.metric.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.metric.Unit(); got != tt.unit {
				t.Errorf("Unit() = %q, want %q", got, tt.unit)
			}
		})
	}
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		got, err := ParseMetric(m.Key())
		if err != nil || got != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.Key(), got, err)
		}
	}

	for _, bad := range []string{"", "Speed", "price", "bandwidth"} {
		if _, err := ParseMetric(bad); !errors.Is(err, ErrUnknownMetric) {
			t.Errorf("ParseMetric(%q) error = %v, want ErrUnknownMetric", bad, err)
		}
	}
}

func TestMetricJSON(t *testing.T) {
	var payload struct {
		Metric Metric `json:"metric"`
	}
	if err := json.Unmarshal([]byte(`{"metric":"pricePerGB"}`), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if payload.Metric != PricePerGB {
		t.Errorf("metric = %v, want pricePerGB", payload.Metric)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"metric":"pricePerGB"}` {
		t.Errorf("Marshal() = %s", data)
	}

	if err := json.Unmarshal([]byte(`{"metric":"watts"}`), &payload); err == nil {
		t.Error("expected error for unknown metric")
	}
}
