package view

import (
	"math"
	"time"

	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
)

// Animation constants
const (
	TickInterval = 50 * time.Millisecond
	ScaleFactor  = 1.0
	MinStep      = 0.1 * ScaleFactor
	MaxPosition  = 100.0
)

// Positions maps a record name to its lane position in [0, 100)
type Positions map[string]float64

// Copy returns an independent copy of p
func (p Positions) Copy() Positions {
	out := make(Positions, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// MaxLatency returns the largest latency among records, or 0 for none
func MaxLatency(records []memtype.Record) float64 {
	maxLatency := 0.0
	for _, r := range records {
		if r.Latency > maxLatency {
			maxLatency = r.Latency
		}
	}
	return maxLatency
}

// normalizedLatency returns ln(latency)/ln(maxLatency) clamped to [0, 1].
// A zero or negative denominator (max latency of 1 ns or below) maps to 0 so
// every record moves at full speed.
func normalizedLatency(latency, maxLatency float64) float64 {
	denom := math.Log(maxLatency)
	if denom <= 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return 0
	}
	n := math.Log(latency) / denom
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0):
		return 0
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// StepSize is how far a record with the given latency moves per tick
func StepSize(latency, maxLatency float64) float64 {
	return (1-normalizedLatency(latency, maxLatency))*ScaleFactor + MinStep
}

// Advance moves a position by step, resetting to 0 at the end of the lane
func Advance(prev, step float64) float64 {
	next := prev + step
	if next >= MaxPosition {
		return 0
	}
	return next
}

// Step returns the positions after one tick for the given records. Entries
// for records not listed are carried over unchanged.
func Step(prev Positions, records []memtype.Record) Positions {
	next := prev.Copy()
	maxLatency := MaxLatency(records)
	for _, r := range records {
		next[r.Name] = Advance(prev[r.Name], StepSize(r.Latency, maxLatency))
	}
	return next
}
