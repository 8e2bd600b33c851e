package benchmark

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/smebench/pkg/models"
)

// countingSource wraps a Generator and counts Series calls.
type countingSource struct {
	*Generator
	calls atomic.Int32
	delay time.Duration
}

func (c *countingSource) Series(ctx context.Context, req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.Generator.Series(ctx, req)
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }
func (failingSource) Series(context.Context, models.BenchmarkRequest) ([]*models.BenchmarkSeries, error) {
	return nil, errors.New("upstream down")
}

func newTestRepo(opts ...RepositoryOption) (*Repository, *countingSource) {
	src := &countingSource{Generator: NewGenerator(42, WithGeneratorClock(fixedClock))}
	opts = append([]RepositoryOption{WithClock(fixedClock)}, opts...)
	return NewRepository(src, opts...), src
}

func retailRequest() models.BenchmarkRequest {
	return models.BenchmarkRequest{
		Industry:    "retail",
		CompanySize: models.SizeSmall,
		Region:      models.RegionMidwest,
	}
}

func TestRepository_CacheIdentity(t *testing.T) {
	repo, src := newTestRepo()
	ctx := context.Background()

	first, err := repo.Series(ctx, retailRequest())
	require.NoError(t, err)
	require.Len(t, first, 5)

	second, err := repo.Series(ctx, retailRequest())
	require.NoError(t, err)
	require.Len(t, second, 5)
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
	assert.EqualValues(t, 1, src.calls.Load())
	assert.Equal(t, 1, repo.CacheSize())

	repo.ClearCache()
	assert.Equal(t, 0, repo.CacheSize())

	third, err := repo.Series(ctx, retailRequest())
	require.NoError(t, err)
	for i := range first {
		assert.NotSame(t, first[i], third[i])
	}
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestRepository_KeyIgnoresMetricOrder(t *testing.T) {
	repo, src := newTestRepo()
	ctx := context.Background()

	req := retailRequest()
	req.Metrics = []string{"profit_margin", "inventory_turnover"}
	a, err := repo.Series(ctx, req)
	require.NoError(t, err)

	req.Metrics = []string{"inventory_turnover", "profit_margin", "profit_margin"}
	b, err := repo.Series(ctx, req)
	require.NoError(t, err)

	assert.Same(t, a[0], b[0])
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestRepository_KeyIncludesDatesAndFrequency(t *testing.T) {
	repo, src := newTestRepo()
	ctx := context.Background()

	req := retailRequest()
	req.Metrics = []string{"profit_margin"}
	_, err := repo.Series(ctx, req)
	require.NoError(t, err)

	req.Frequency = models.FrequencyQuarterly
	_, err = repo.Series(ctx, req)
	require.NoError(t, err)

	req.StartDate = models.NewDate(2020, time.January, 1)
	_, err = repo.Series(ctx, req)
	require.NoError(t, err)

	assert.EqualValues(t, 3, src.calls.Load())
	assert.Equal(t, 3, repo.CacheSize())
}

func TestRepository_Resolve(t *testing.T) {
	repo, _ := newTestRepo(WithWindowMonths(6), WithDefaultFrequency(models.FrequencyQuarterly))

	got, err := repo.Resolve(models.BenchmarkRequest{
		Industry:    "retail",
		CompanySize: "Small",
		Region:      " WEST ",
		Metrics:     []string{"profit_margin", "profit_margin"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SizeSmall, got.CompanySize)
	assert.Equal(t, models.RegionWest, got.Region)
	assert.Equal(t, []string{"profit_margin"}, got.Metrics)
	assert.Equal(t, models.NewDate(2024, time.June, 15), got.EndDate)
	assert.Equal(t, models.NewDate(2023, time.December, 15), got.StartDate)
	assert.Equal(t, models.FrequencyQuarterly, got.Frequency)

	end := models.NewDate(2022, time.March, 31)
	got, err = repo.Resolve(models.BenchmarkRequest{
		Industry: "retail", CompanySize: models.SizeLarge, Region: models.RegionNational,
		EndDate: end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2021, time.September, 30), got.StartDate)
}

func TestRepository_ValidationErrors(t *testing.T) {
	repo, src := newTestRepo()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.BenchmarkRequest)
		target any
	}{
		{"industry", func(r *models.BenchmarkRequest) { r.Industry = "aerospace" }, &ErrUnsupportedIndustry{}},
		{"size", func(r *models.BenchmarkRequest) { r.CompanySize = "huge" }, &models.ErrInvalidEnum{}},
		{"region", func(r *models.BenchmarkRequest) { r.Region = "mars" }, &models.ErrInvalidEnum{}},
		{"frequency", func(r *models.BenchmarkRequest) { r.Frequency = "daily" }, &models.ErrInvalidEnum{}},
		{"metric", func(r *models.BenchmarkRequest) { r.Metrics = []string{"profit_margin", "nope"} }, &ErrUnsupportedMetric{}},
		{"dates", func(r *models.BenchmarkRequest) {
			r.StartDate = models.NewDate(2024, time.May, 1)
			r.EndDate = models.NewDate(2024, time.January, 1)
		}, &ErrInvalidDateRange{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := retailRequest()
			tt.mutate(&req)
			_, err := repo.Series(ctx, req)
			require.Error(t, err)
			assert.IsType(t, tt.target, err)
			assert.Equal(t, KindValidation, Classify(err))
		})
	}
	assert.EqualValues(t, 0, src.calls.Load())
}

func TestRepository_SourceErrorNotCached(t *testing.T) {
	repo := NewRepository(failingSource{}, WithClock(fixedClock))

	_, err := repo.Series(context.Background(), retailRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
	assert.Equal(t, KindInternal, Classify(err))
	assert.Equal(t, 0, repo.CacheSize())
}

func TestRepository_ConcurrentFillsCoalesce(t *testing.T) {
	repo, src := newTestRepo()
	src.delay = 20 * time.Millisecond

	const n = 16
	results := make([][]*models.BenchmarkSeries, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := repo.Series(context.Background(), retailRequest())
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, src.calls.Load())
	for i := 1; i < n; i++ {
		require.Len(t, results[i], 5)
		assert.Same(t, results[0][0], results[i][0])
	}
}

func TestRepository_MaxEntries(t *testing.T) {
	repo, _ := newTestRepo(WithMaxEntries(2))
	ctx := context.Background()

	for _, m := range []string{"profit_margin", "inventory_turnover", "customer_retention_rate"} {
		req := retailRequest()
		req.Metrics = []string{m}
		_, err := repo.Series(ctx, req)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, repo.CacheSize())
}

func TestRepository_CancelledContext(t *testing.T) {
	repo, src := newTestRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Series(ctx, retailRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, src.calls.Load())
}

// gatedSource blocks every Series call until release is closed.
type gatedSource struct {
	*Generator
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedSource) Series(ctx context.Context, req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	<-g.release
	return g.Generator.Series(ctx, req)
}

func TestRepository_CancelledCallerDoesNotFailSharedFill(t *testing.T) {
	src := &gatedSource{
		Generator: NewGenerator(42, WithGeneratorClock(fixedClock)),
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	repo := NewRepository(src, WithClock(fixedClock))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := repo.Series(ctxA, retailRequest())
		errA <- err
	}()
	<-src.started

	type outcome struct {
		series []*models.BenchmarkSeries
		err    error
	}
	resB := make(chan outcome, 1)
	go func() {
		s, err := repo.Series(context.Background(), retailRequest())
		resB <- outcome{s, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(src.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Len(t, b.series, 5)
	assert.EqualValues(t, 1, src.calls.Load())
	assert.Equal(t, 1, repo.CacheSize(), "fill completed after the first caller left")
}

func TestRepository_CacheSizeDropsExpired(t *testing.T) {
	now := fixedNow
	clock := func() time.Time { return now }
	repo := NewRepository(NewGenerator(42, WithGeneratorClock(clock)), WithClock(clock), WithTTL(time.Hour))

	_, err := repo.Series(context.Background(), retailRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.CacheSize())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 0, repo.CacheSize())
}
