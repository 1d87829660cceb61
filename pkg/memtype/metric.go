package memtype

import (
	"errors"
	"fmt"
)

// ErrUnknownMetric is returned when parsing text that is not a metric key
var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects which numeric field drives the chart
type Metric int

// Supported metrics. Speed is the zero value and the default.
const (
	Speed Metric = iota
	Latency
	PricePerGB
)

// Metrics lists every metric in display order
var Metrics = []Metric{Speed, Latency, PricePerGB}

// Key returns the field name used in chart payloads
func (m Metric) Key() string {
	switch m {
	case Latency:
		return "latency"
	case PricePerGB:
		return "pricePerGB"
	default:
		return "speed"
	}
}

// Label returns the human readable name
func (m Metric) Label() string {
	switch m {
	case Latency:
		return "Latency"
	case PricePerGB:
		return "Price per GB"
	default:
		return "Speed"
	}
}

// Unit returns the value axis unit
func (m Metric) Unit() string {
	switch m {
	case Latency:
		return "ns"
	case PricePerGB:
		return "$/GB"
	default:
		return "GB/s"
	}
}

func (m Metric) String() string {
	return m.Key()
}

// ParseMetric converts a metric key back into a Metric
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if m.Key() == s {
			return m, nil
		}
	}
	return Speed, fmt.Errorf("%w: %q (want speed, latency or pricePerGB)", ErrUnknownMetric, s)
}

// MarshalText implements encoding.TextMarshaler
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
