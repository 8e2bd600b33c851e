package benchmark

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheLookups counts repository lookups by result ("hit" or "miss").
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smebench_cache_lookups_total",
		Help: "Benchmark repository cache lookups by result",
	}, []string{"result"})

	// seriesGenerated counts series produced by a source.
	seriesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smebench_series_generated_total",
		Help: "Benchmark series produced by source and industry",
	}, []string{"source", "industry"})

	cacheClears = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smebench_cache_clears_total",
		Help: "Number of times the benchmark cache was cleared",
	})

	// comparisons counts completed comparisons by interpretation band.
	comparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smebench_comparisons_total",
		Help: "Completed benchmark comparisons by interpretation",
	}, []string{"interpretation"})

	// comparisonSkips counts metrics CompareMany could not evaluate, by error kind.
	comparisonSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smebench_comparison_skips_total",
		Help: "Metrics skipped during batch comparison by error kind",
	}, []string{"kind"})
)
