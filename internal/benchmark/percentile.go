package benchmark

import (
	"math"

	"github.com/seenimoa/smebench/pkg/models"
)

type marker struct {
	rank  float64
	value float64
}

// knownMarkers returns the present percentile markers in ascending rank order.
func knownMarkers(p models.BenchmarkPoint) []marker {
	ranks := [5]float64{10, 25, 50, 75, 90}
	out := make([]marker, 0, 5)
	for i, v := range p.Percentiles() {
		if v != nil {
			out = append(out, marker{rank: ranks[i], value: *v})
		}
	}
	return out
}

// PercentileRank estimates where value falls in the point's distribution by
// piecewise-linear interpolation between the present markers. It returns nil
// when p25 or p75 is missing.
//
// With all five markers present:
//
//	value <= p10        clamp(0, 10, value/p10*10)
//	pN < value <= pM    N + (value-pN)/(pM-pN)*(M-N)
//	value > p90         min(99, 90 + (value/p90-1)*10)
//
// Markers are tested in rank order and the first one at or above value picks
// the segment, so crossed markers still resolve to a band. Missing p10, p50 or
// p90 are skipped and the neighbouring markers bound the segment instead.
// Results are rounded to the nearest integer.
func PercentileRank(value float64, p models.BenchmarkPoint) *int {
	if p.P25 == nil || p.P75 == nil {
		return nil
	}
	ms := knownMarkers(p)

	rank, found := 0.0, false
	for i, m := range ms {
		if value > m.value {
			continue
		}
		if i == 0 {
			if m.value > 0 {
				rank = math.Min(m.rank, math.Max(0, math.Round(value/m.value*m.rank)))
			}
		} else {
			// Every earlier marker is below value, so the span is positive.
			prev := ms[i-1]
			ratio := (value - prev.value) / (m.value - prev.value)
			rank = math.Round(prev.rank + ratio*(m.rank-prev.rank))
		}
		found = true
		break
	}
	if !found {
		last := ms[len(ms)-1]
		if last.value <= 0 {
			rank = 99
		} else {
			rank = math.Min(99, math.Round(last.rank+(value/last.value-1)*10))
		}
	}

	r := int(rank)
	return &r
}

// Interpret places value in one of the five interpretation bands using p10,
// p25, p75 and p90. Without p10 or p90 it falls back to a ±15% window around
// the point's value and never returns the "significantly" bands.
func Interpret(value float64, p models.BenchmarkPoint) models.Interpretation {
	if p.P10 == nil || p.P90 == nil || p.P25 == nil || p.P75 == nil {
		switch {
		case value > p.Value*1.15:
			return models.AboveAverage
		case value < p.Value*0.85:
			return models.BelowAverage
		}
		return models.Average
	}

	switch {
	case value >= *p.P90:
		return models.SignificantlyAbove
	case value >= *p.P75:
		return models.AboveAverage
	case value >= *p.P25:
		return models.Average
	case value >= *p.P10:
		return models.BelowAverage
	}
	return models.SignificantlyBelow
}
