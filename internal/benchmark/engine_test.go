package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/smebench/internal/config"
	"github.com/seenimoa/smebench/pkg/models"
)

func TestNewEngineFromConfig(t *testing.T) {
	cfg := config.Default().Benchmark
	cfg.Seed = 99
	cfg.EnforceMonotonicPercentiles = true
	cfg.DefaultFrequency = "quarterly"
	cfg.DefaultWindowMonths = 24
	cfg.CacheMaxEntries = 1

	e := NewEngineFromConfig(cfg, nil, WithClock(fixedClock))
	require.NotNil(t, e.Generator)
	require.NotNil(t, e.Repository)
	require.NotNil(t, e.Comparator)
	assert.EqualValues(t, 99, e.Generator.Seed())
	assert.True(t, e.Generator.MonotonicPercentiles())

	resolved, err := e.Repository.Resolve(models.BenchmarkRequest{
		Industry:    "retail",
		CompanySize: models.SizeSmall,
		Region:      models.RegionWest,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyQuarterly, resolved.Frequency)
	assert.Equal(t, "2022-06-15", resolved.StartDate.String())
	assert.Equal(t, "2024-06-15", resolved.EndDate.String())

	series, err := e.Repository.Series(context.Background(), resolved)
	require.NoError(t, err)
	require.NotEmpty(t, series)
	for _, p := range series[0].Points {
		assert.True(t, p.Monotonic(), p.Period.String())
	}

	other := resolved
	other.Region = models.RegionNational
	_, err = e.Repository.Series(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Repository.CacheSize(), "max entries applied")
}

func TestNewEngineFromConfigSharesRepository(t *testing.T) {
	e := NewEngineFromConfig(config.Default().Benchmark, nil,
		WithClock(func() time.Time { return fixedNow }))

	_, err := e.Comparator.Compare(context.Background(), 0.1, "profit_margin", models.BenchmarkRequest{
		Industry: "retail", CompanySize: models.SizeSmall, Region: models.RegionWest,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Repository.CacheSize())
}
