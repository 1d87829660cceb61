// Package memtype holds the fixed GPU memory technology dataset.
package memtype

import (
	"errors"
	"fmt"
)

// ErrUnknownRecord is returned when a name does not match any record
var ErrUnknownRecord = errors.New("unknown memory type")

// Record describes one memory technology
type Record struct {
	Name         string  `json:"name"`
	Speed        float64 `json:"speed"`      // GB/s
	Latency      float64 `json:"latency"`    // ns, always > 0
	PricePerGB   float64 `json:"pricePerGB"` // $
	KeyFeatures  string  `json:"keyFeatures"`
	Applications string  `json:"applications"`
}

// Values are approximations and vary with implementation and market conditions.
var records = []Record{
	{
		Name:         "HBM3E",
		Speed:        1200,
		Latency:      10,
		PricePerGB:   40,
		KeyFeatures:  "Highest bandwidth, 3D stacking, 9.6 GT/s data rate",
		Applications: "AI accelerators, high-end GPUs, HPC",
	},
	{
		Name:         "GDDR6X",
		Speed:        1008,
		Latency:      12,
		PricePerGB:   15,
		KeyFeatures:  "High bandwidth, PAM4 signaling, power-efficient",
		Applications: "High-end gaming GPUs, professional graphics",
	},
	{
		Name:         "GDDR6",
		Speed:        960,
		Latency:      14,
		PricePerGB:   10,
		KeyFeatures:  "Widely used, up to 24 Gbps per pin",
		Applications: "Gaming GPUs, mid-range to high-end graphics cards",
	},
	{
		Name:         "HBM2E",
		Speed:        460,
		Latency:      20,
		PricePerGB:   30,
		KeyFeatures:  "High bandwidth, lower power consumption",
		Applications: "Data center GPUs, AI training",
	},
	{
		Name:         "GDDR5X",
		Speed:        448,
		Latency:      20,
		PricePerGB:   8,
		KeyFeatures:  "Improved GDDR5, higher data rates",
		Applications: "Older high-end GPUs, some current mid-range cards",
	},
	{
		Name:         "GDDR5",
		Speed:        336,
		Latency:      25,
		PricePerGB:   5,
		KeyFeatures:  "Legacy standard, still widely used",
		Applications: "Budget GPUs, older graphics cards",
	},
	{
		Name:         "SRAM (L1 Cache)",
		Speed:        10000,
		Latency:      1,
		PricePerGB:   10000,
		KeyFeatures:  "Extremely fast, very low capacity",
		Applications: "CPU and GPU cache, fastest on-chip memory",
	},
}

// All returns a copy of the dataset in its fixed order
func All() []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Names returns every record name in dataset order
func Names() []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

// Lookup finds a record by name
func Lookup(name string) (Record, error) {
	for _, r := range records {
		if r.Name == name {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %q", ErrUnknownRecord, name)
}

// Exists reports whether name matches a record
func Exists(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Value returns the field of r selected by m
func (r Record) Value(m Metric) float64 {
	switch m {
	case Latency:
		return r.Latency
	case PricePerGB:
		return r.PricePerGB
	default:
		return r.Speed
	}
}

// Upcoming lists the notes about technologies still in development
var Upcoming = []string{
	"It will use a 2048-bit interface, potentially doubling the bandwidth compared to HBM3E.",
	"Theoretical peak memory bandwidth per stack is expected to exceed 1.5 TB/s.",
	"SK Hynix and Samsung are aiming for mass production of HBM4 by 2026.",
}

// Disclaimer is shown alongside every rendering of the dataset
const Disclaimer = "Note: The values for speed, latency, and price per GB are approximations " +
	"and can vary based on specific implementations and market conditions."
