package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/seenimoa/smebench/internal/infra"
	"github.com/seenimoa/smebench/pkg/models"
)

// Repository serves benchmark series from a Source through an in-memory
// cache. Identical resolved requests return the same series instances until
// ClearCache is called. Fills for one key are coalesced so a series set is
// generated at most once per key at a time.
type Repository struct {
	source       Source
	cache        *infra.Cache
	group        singleflight.Group
	logger       *slog.Logger
	now          func() time.Time
	ttl          time.Duration
	maxEntries   int
	windowMonths int
	defaultFreq  models.Frequency
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithClock sets the clock used to resolve default date ranges.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// WithLogger sets the repository logger.
func WithLogger(l *slog.Logger) RepositoryOption {
	return func(r *Repository) { r.logger = l }
}

// WithTTL sets how long cached series live. 0 means forever.
func WithTTL(ttl time.Duration) RepositoryOption {
	return func(r *Repository) { r.ttl = ttl }
}

// WithMaxEntries bounds the number of cached request keys. 0 means unbounded.
func WithMaxEntries(n int) RepositoryOption {
	return func(r *Repository) { r.maxEntries = n }
}

// WithWindowMonths sets the trailing window used when no start date is given.
func WithWindowMonths(n int) RepositoryOption {
	return func(r *Repository) {
		if n > 0 {
			r.windowMonths = n
		}
	}
}

// WithDefaultFrequency sets the frequency used when a request leaves it empty.
func WithDefaultFrequency(f models.Frequency) RepositoryOption {
	return func(r *Repository) {
		if f != "" {
			r.defaultFreq = f
		}
	}
}

// NewRepository creates a caching repository over source.
func NewRepository(source Source, opts ...RepositoryOption) *Repository {
	r := &Repository{
		source:       source,
		logger:       slog.Default(),
		now:          time.Now,
		windowMonths: 12,
		defaultFreq:  models.FrequencyMonthly,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = infra.NewCache(r.ttl, infra.WithMaxEntries(r.maxEntries), infra.WithCacheClock(r.now))
	return r
}

// Resolve validates req and fills in its defaults: enums are normalised,
// duplicate metrics dropped, missing dates set to the trailing window ending
// today and an empty frequency replaced by the repository default.
func (r *Repository) Resolve(req models.BenchmarkRequest) (models.BenchmarkRequest, error) {
	if !HasIndustry(req.Industry) {
		return req, &ErrUnsupportedIndustry{Industry: req.Industry}
	}
	size, err := models.ParseCompanySize(string(req.CompanySize))
	if err != nil {
		return req, err
	}
	region, err := models.ParseRegion(string(req.Region))
	if err != nil {
		return req, err
	}
	freq := req.Frequency
	if freq == "" {
		freq = r.defaultFreq
	}
	if freq, err = models.ParseFrequency(string(freq)); err != nil {
		return req, err
	}

	metrics := lo.Uniq(req.Metrics)
	for _, m := range metrics {
		if _, err := Lookup(req.Industry, m); err != nil {
			return req, err
		}
	}

	start, end := req.StartDate, req.EndDate
	if end.IsZero() {
		end = models.DateOf(r.now())
	}
	if start.IsZero() {
		start = end.AddMonths(-r.windowMonths)
	}
	if end.Before(start) {
		return req, &ErrInvalidDateRange{Start: start, End: end}
	}

	return models.BenchmarkRequest{
		Industry:    req.Industry,
		CompanySize: size,
		Region:      region,
		Metrics:     metrics,
		StartDate:   start,
		EndDate:     end,
		Frequency:   freq,
	}, nil
}

// Series returns the series for req, generating and caching them on a miss.
// Returned series are shared with the cache and must not be modified.
func (r *Repository) Series(ctx context.Context, req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resolved, err := r.Resolve(req)
	if err != nil {
		return nil, err
	}
	key := cacheKey(resolved)

	if v, ok := r.cache.Get(key); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return v.([]*models.BenchmarkSeries), nil
	}
	cacheLookups.WithLabelValues("miss").Inc()

	// The fill outlives any one caller: a cancelled caller stops waiting but
	// the callers sharing the key still get the series.
	fillCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		if v, ok := r.cache.Get(key); ok {
			return v, nil
		}
		series, err := r.source.Series(fillCtx, resolved)
		if err != nil {
			return nil, fmt.Errorf("generating %s series: %w", r.source.Name(), err)
		}
		r.cache.Set(key, series)
		seriesGenerated.WithLabelValues(r.source.Name(), resolved.Industry).Add(float64(len(series)))
		r.logger.Debug("benchmark series generated",
			"key", key,
			"series", len(series),
			"source", r.source.Name())
		return series, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		r.logger.Debug("benchmark fill shared", "key", key)
	}
	return res.Val.([]*models.BenchmarkSeries), nil
}

// ClearCache drops every cached series.
func (r *Repository) ClearCache() {
	n := r.cache.Len()
	r.cache.Flush()
	cacheClears.Inc()
	r.logger.Info("benchmark cache cleared", "entries", n)
}

// CacheSize returns the number of unexpired cached request keys.
func (r *Repository) CacheSize() int {
	r.cache.Cleanup()
	return r.cache.Len()
}

// cacheKey identifies a resolved request. Metric order does not matter.
func cacheKey(req models.BenchmarkRequest) string {
	metrics := "all"
	if len(req.Metrics) > 0 {
		sorted := slices.Clone(req.Metrics)
		slices.Sort(sorted)
		metrics = strings.Join(sorted, ",")
	}
	return strings.Join([]string{
		req.Industry,
		string(req.CompanySize),
		string(req.Region),
		metrics,
		req.StartDate.String(),
		req.EndDate.String(),
		string(req.Frequency),
	}, "|")
}
