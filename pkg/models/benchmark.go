// Package models defines the benchmark data structures shared by the engine,
// the HTTP API and the CLI.
package models

import (
	"fmt"
	"math"
)

// MetricTemplate is the base distribution of one industry metric.
type MetricTemplate struct {
	BaseMean         float64 `json:"base_mean"`
	BaseStdDev       float64 `json:"base_std_dev"`       // always >= 0
	AnnualGrowthRate float64 `json:"annual_growth_rate"` // e.g. 0.03 for 3% a year
}

// BenchmarkPoint is one dated observation of a metric's distribution.
// Percentile markers are nil when unknown; when all are present they are
// not guaranteed to be ordered unless the series was generated with
// monotonic percentiles enabled.
type BenchmarkPoint struct {
	MetricName  string         `json:"metric_name"`
	Industry    string         `json:"industry"`
	CompanySize CompanySize    `json:"company_size"`
	Region      Region         `json:"region"`
	Period      Date           `json:"period"`
	Source      DataSource     `json:"source"`
	Value       float64        `json:"value"`
	P10         *float64       `json:"percentile_10"`
	P25         *float64       `json:"percentile_25"`
	P50         *float64       `json:"percentile_50"`
	P75         *float64       `json:"percentile_75"`
	P90         *float64       `json:"percentile_90"`
	SampleSize  int            `json:"sample_size"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Percentiles returns the five markers in ascending percentile order.
func (p BenchmarkPoint) Percentiles() [5]*float64 {
	return [5]*float64{p.P10, p.P25, p.P50, p.P75, p.P90}
}

// Monotonic reports whether every present marker is >= the previous present one.
func (p BenchmarkPoint) Monotonic() bool {
	prev := math.Inf(-1)
	for _, v := range p.Percentiles() {
		if v == nil {
			continue
		}
		if *v < prev {
			return false
		}
		prev = *v
	}
	return true
}

// SeriesMetadata describes how a series was produced.
type SeriesMetadata struct {
	Frequency            Frequency `json:"frequency"`
	BaseMean             float64   `json:"base_mean"`
	GrowthRate           float64   `json:"growth_rate"`
	GeneratedAt          Date      `json:"generated_at"`
	GenerationID         string    `json:"generation_id"`
	MonotonicPercentiles bool      `json:"monotonic_percentiles"`
}

// BenchmarkSeries is a chronologically ordered run of points that share
// metric, industry, size and region. Series handed out by the repository
// are shared and must not be modified.
type BenchmarkSeries struct {
	MetricName  string           `json:"metric_name"`
	Industry    string           `json:"industry"`
	CompanySize CompanySize      `json:"company_size"`
	Region      Region           `json:"region"`
	Points      []BenchmarkPoint `json:"data_points"`
	Metadata    SeriesMetadata   `json:"metadata"`
}

// Latest returns the point with the greatest period (first one on ties).
func (s *BenchmarkSeries) Latest() (BenchmarkPoint, bool) {
	if len(s.Points) == 0 {
		return BenchmarkPoint{}, false
	}
	best := 0
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].Period.After(s.Points[best].Period) {
			best = i
		}
	}
	return s.Points[best], true
}

// At returns the point whose period equals d exactly.
func (s *BenchmarkSeries) At(d Date) (BenchmarkPoint, bool) {
	for _, p := range s.Points {
		if p.Period.Equal(d) {
			return p, true
		}
	}
	return BenchmarkPoint{}, false
}

// Nearest returns the exact match for d if one exists, otherwise the point
// with the smallest absolute day distance (first one on ties).
func (s *BenchmarkSeries) Nearest(d Date) (BenchmarkPoint, bool) {
	if p, ok := s.At(d); ok {
		return p, true
	}
	if len(s.Points) == 0 {
		return BenchmarkPoint{}, false
	}
	best, bestDist := 0, absInt(s.Points[0].Period.DaysSince(d))
	for i := 1; i < len(s.Points); i++ {
		if dist := absInt(s.Points[i].Period.DaysSince(d)); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return s.Points[best], true
}

// BenchmarkRequest selects which series to produce. Empty Metrics means every
// metric known for the industry; zero dates mean the trailing twelve months,
// resolved when the request is served.
type BenchmarkRequest struct {
	Industry    string      `json:"industry"`
	CompanySize CompanySize `json:"company_size"`
	Region      Region      `json:"region"`
	Metrics     []string    `json:"metrics,omitempty"`
	StartDate   Date        `json:"start_date"`
	EndDate     Date        `json:"end_date"`
	Frequency   Frequency   `json:"frequency,omitempty"`
}

// ComparisonResult places one user value against a benchmark point.
type ComparisonResult struct {
	MetricName           string         `json:"metric_name"`
	UserValue            float64        `json:"user_value"`
	BenchmarkValue       float64        `json:"benchmark_value"`
	Difference           float64        `json:"difference"`
	PercentageDifference float64        `json:"percentage_difference"`
	PercentileRank       *int           `json:"percentile_rank"`
	Interpretation       Interpretation `json:"interpretation"`
	P25                  *float64       `json:"percentile_25"`
	P75                  *float64       `json:"percentile_75"`
	Industry             string         `json:"industry"`
	CompanySize          CompanySize    `json:"company_size"`
	Region               Region         `json:"region"`
	Period               Date           `json:"period"`
}

// Summary renders the fixed one-line reading of the comparison.
func (c ComparisonResult) Summary() string {
	pct := math.Abs(c.PercentageDifference)
	switch c.Interpretation {
	case SignificantlyAbove:
		return fmt.Sprintf("Significantly above industry average (top 10%%). Your %s is %.1f%% higher than the benchmark.", c.MetricName, pct)
	case AboveAverage:
		return fmt.Sprintf("Above industry average. Your %s is %.1f%% higher than the benchmark.", c.MetricName, pct)
	case Average:
		return fmt.Sprintf("Within industry average range. Your %s is close to the benchmark (%.1f%% difference).", c.MetricName, pct)
	case BelowAverage:
		return fmt.Sprintf("Below industry average. Your %s is %.1f%% lower than the benchmark.", c.MetricName, pct)
	case SignificantlyBelow:
		return fmt.Sprintf("Significantly below industry average (bottom 10%%). Your %s is %.1f%% lower than the benchmark.", c.MetricName, pct)
	}
	return "Unable to interpret benchmark comparison."
}

// SkippedMetric records a metric CompareMany could not evaluate.
type SkippedMetric struct {
	Metric string `json:"metric"`
	Kind   string `json:"kind"` // "validation", "no_data" or "internal"
	Reason string `json:"reason"`
}

// BatchComparison is the outcome of comparing several metrics at once.
type BatchComparison struct {
	Results []ComparisonResult `json:"results"`
	Skipped []SkippedMetric    `json:"skipped"`
}

// IndustryInfo summarises what the engine can produce for an industry.
type IndustryInfo struct {
	Industry         string        `json:"industry"`
	AvailableMetrics []string      `json:"available_metrics"`
	MetricCount      int           `json:"metric_count"`
	SupportedSizes   []CompanySize `json:"supported_sizes"`
	SupportedRegions []Region      `json:"supported_regions"`
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
