package benchmark

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"github.com/seenimoa/smebench/pkg/models"
	"github.com/seenimoa/smebench/pkg/utils"
)

// SeriesProvider is the part of the Repository the comparator needs.
type SeriesProvider interface {
	Series(ctx context.Context, req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error)
}

// Comparator places user-reported values against benchmark series.
type Comparator struct {
	repo   SeriesProvider
	logger *slog.Logger
}

// ComparatorOption configures a Comparator.
type ComparatorOption func(*Comparator)

// WithComparatorLogger sets the logger used for skipped metrics.
func WithComparatorLogger(l *slog.Logger) ComparatorOption {
	return func(c *Comparator) { c.logger = l }
}

// NewComparator creates a comparator reading series from repo.
func NewComparator(repo SeriesProvider, opts ...ComparatorOption) *Comparator {
	c := &Comparator{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare compares userValue against metric's benchmark. A nil period uses
// the latest point; otherwise the exact period, falling back to the nearest
// one by day distance. req is not modified.
func (c *Comparator) Compare(ctx context.Context, userValue float64, metric string, req models.BenchmarkRequest, period *models.Date) (models.ComparisonResult, error) {
	single := req
	single.Metrics = []string{metric}

	seriesList, err := c.repo.Series(ctx, single)
	if err != nil {
		return models.ComparisonResult{}, err
	}
	if len(seriesList) == 0 {
		return models.ComparisonResult{}, &ErrNoBenchmarkData{Metric: metric}
	}
	series := seriesList[0]

	var (
		point models.BenchmarkPoint
		ok    bool
	)
	if period == nil {
		point, ok = series.Latest()
	} else {
		point, ok = series.Nearest(*period)
	}
	if !ok {
		noData := &ErrNoBenchmarkData{Metric: metric}
		if period != nil {
			noData.Period = *period
		}
		return models.ComparisonResult{}, noData
	}

	diff := userValue - point.Value
	var pct float64
	if point.Value != 0 {
		pct = diff / point.Value * 100
	}

	result := models.ComparisonResult{
		MetricName:           metric,
		UserValue:            userValue,
		BenchmarkValue:       point.Value,
		Difference:           utils.Round2(diff),
		PercentageDifference: utils.Round2(pct),
		PercentileRank:       PercentileRank(userValue, point),
		Interpretation:       Interpret(userValue, point),
		P25:                  point.P25,
		P75:                  point.P75,
		Industry:             series.Industry,
		CompanySize:          series.CompanySize,
		Region:               series.Region,
		Period:               point.Period,
	}
	comparisons.WithLabelValues(string(result.Interpretation)).Inc()
	return result, nil
}

// CompareMany compares every metric in values, in metric-name order. Metrics
// that cannot be compared are reported in Skipped rather than failing the
// call; only cancellation of ctx aborts the batch.
func (c *Comparator) CompareMany(ctx context.Context, values map[string]float64, req models.BenchmarkRequest, period *models.Date) (models.BatchComparison, error) {
	out := models.BatchComparison{
		Results: []models.ComparisonResult{},
		Skipped: []models.SkippedMetric{},
	}

	metrics := lo.Keys(values)
	slices.Sort(metrics)

	for _, metric := range metrics {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := c.Compare(ctx, values[metric], metric, req, period)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return out, err
			}
			kind := Classify(err)
			comparisonSkips.WithLabelValues(string(kind)).Inc()
			c.logger.Warn("benchmark comparison skipped",
				"metric", metric,
				"industry", req.Industry,
				"kind", kind,
				"error", err)
			out.Skipped = append(out.Skipped, models.SkippedMetric{
				Metric: metric,
				Kind:   string(kind),
				Reason: err.Error(),
			})
			continue
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
