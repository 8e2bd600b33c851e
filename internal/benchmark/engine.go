package benchmark

import (
	"log/slog"

	"github.com/seenimoa/smebench/internal/config"
	"github.com/seenimoa/smebench/pkg/models"
)

// Engine bundles the generator, repository and comparator built from one
// benchmark config section.
type Engine struct {
	Generator  *Generator
	Repository *Repository
	Comparator *Comparator
}

// NewEngineFromConfig wires an Engine from cfg. Extra repository options are
// applied after the config-derived ones.
func NewEngineFromConfig(cfg config.BenchmarkConfig, logger *slog.Logger, opts ...RepositoryOption) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	gen := NewGenerator(cfg.Seed, WithMonotonicPercentiles(cfg.EnforceMonotonicPercentiles))

	repoOpts := []RepositoryOption{
		WithLogger(logger),
		WithTTL(cfg.CacheTTLDuration()),
		WithMaxEntries(cfg.CacheMaxEntries),
		WithWindowMonths(cfg.DefaultWindowMonths),
		WithDefaultFrequency(models.Frequency(cfg.DefaultFrequency)),
	}
	repo := NewRepository(gen, append(repoOpts, opts...)...)

	return &Engine{
		Generator:  gen,
		Repository: repo,
		Comparator: NewComparator(repo, WithComparatorLogger(logger)),
	}
}
