package benchmark

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/seenimoa/smebench/pkg/models"
	"github.com/seenimoa/smebench/pkg/utils"
)

// Source produces benchmark series for a resolved request (dates set,
// enums validated). The synthetic Generator is the only implementation;
// an external statistics feed would plug in here.
type Source interface {
	Name() string
	Series(ctx context.Context, req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error)
}

// sampleSizeRanges are inclusive panel sizes per company size. Panels hold
// more small-company respondents than large ones.
var sampleSizeRanges = map[models.CompanySize][2]int{
	models.SizeSmall:  {50, 500},
	models.SizeMedium: {30, 200},
	models.SizeLarge:  {20, 100},
}

// percentileShape is a marker's centre as a fraction of the period mean and
// its spread as a fraction of the adjusted standard deviation.
type percentileShape struct {
	meanRatio, stdRatio float64
}

var (
	shapeP25 = percentileShape{0.85, 0.5}
	shapeP75 = percentileShape{1.15, 0.5}
	shapeP10 = percentileShape{0.70, 0.3}
	shapeP90 = percentileShape{1.30, 0.3}
)

// Generator produces seeded synthetic benchmark series. Output is
// reproducible for a given seed and call sequence. Safe for concurrent use;
// concurrent callers interleave draws, so only a single caller sees a
// reproducible sequence.
type Generator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	seed      int64
	monotonic bool
	now       func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMonotonicPercentiles sorts the five sampled percentile markers of every
// point so p10<=p25<=p50<=p75<=p90. Off by default, in which case markers are
// sampled independently and may cross.
func WithMonotonicPercentiles(enabled bool) GeneratorOption {
	return func(g *Generator) { g.monotonic = enabled }
}

// WithGeneratorClock overrides the clock used for the generated_at stamp.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64, opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
		seed: seed,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name identifies the source in logs and metrics.
func (g *Generator) Name() string { return string(models.SourceSynthetic) }

// Seed returns the construction seed.
func (g *Generator) Seed() int64 { return g.seed }

// MonotonicPercentiles reports which percentile mode is active.
func (g *Generator) MonotonicPercentiles() bool { return g.monotonic }

// Series generates one series per requested metric, in request order. An
// empty metric list means every metric of the industry. Cancellation is
// checked between metrics.
func (g *Generator) Series(ctx context.Context, req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error) {
	metrics := req.Metrics
	if len(metrics) == 0 {
		if !HasIndustry(req.Industry) {
			return nil, &ErrUnsupportedIndustry{Industry: req.Industry}
		}
		metrics = Metrics(req.Industry)
	}

	out := make([]*models.BenchmarkSeries, 0, len(metrics))
	for _, metric := range metrics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := g.Generate(metric, req.Industry, req.CompanySize, req.Region, req.StartDate, req.EndDate, req.Frequency)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Generate produces the series for one metric between start and end
// inclusive, stepping monthly or quarterly from start. A range whose end
// precedes its start yields an empty series.
func (g *Generator) Generate(metric, industry string, size models.CompanySize, region models.Region, start, end models.Date, freq models.Frequency) (*models.BenchmarkSeries, error) {
	tmpl, err := Lookup(industry, metric)
	if err != nil {
		return nil, err
	}
	if size, err = models.ParseCompanySize(string(size)); err != nil {
		return nil, err
	}
	if region, err = models.ParseRegion(string(region)); err != nil {
		return nil, err
	}
	if freq, err = models.ParseFrequency(string(freq)); err != nil {
		return nil, err
	}

	adjMean, adjStd := Adjust(tmpl, size, region)
	periods := utils.MonthSteps(start.Time(), end.Time(), freq.StepMonths())

	g.mu.Lock()
	defer g.mu.Unlock()

	points := make([]models.BenchmarkPoint, 0, len(periods))
	for _, t := range periods {
		period := models.DateOf(t)

		years := float64(period.DaysSince(start)) / 365.25
		trend := math.Pow(1+tmpl.AnnualGrowthRate, years)
		seasonal := SeasonalFactor(industry, metric, period)
		mean := adjMean * trend * seasonal

		// Draw order is fixed: value, p25, p75, p10, p90, sample size.
		value := max(0, g.gauss(mean, adjStd))
		p25 := g.marker(mean, adjStd, shapeP25)
		p50 := mean
		p75 := g.marker(mean, adjStd, shapeP75)
		p10 := g.marker(mean, adjStd, shapeP10)
		p90 := g.marker(mean, adjStd, shapeP90)

		if g.monotonic {
			sorted := []float64{p10, p25, p50, p75, p90}
			slices.Sort(sorted)
			p10, p25, p50, p75, p90 = sorted[0], sorted[1], sorted[2], sorted[3], sorted[4]
		}

		points = append(points, models.BenchmarkPoint{
			MetricName:  metric,
			Industry:    industry,
			CompanySize: size,
			Region:      region,
			Period:      period,
			Source:      models.SourceSynthetic,
			Value:       utils.Round2(value),
			P10:         lo.ToPtr(utils.Round2(p10)),
			P25:         lo.ToPtr(utils.Round2(p25)),
			P50:         lo.ToPtr(utils.Round2(p50)),
			P75:         lo.ToPtr(utils.Round2(p75)),
			P90:         lo.ToPtr(utils.Round2(p90)),
			SampleSize:  g.sampleSize(size),
			Metadata: map[string]any{
				"trend_factor":    utils.Round3(trend),
				"seasonal_factor": utils.Round3(seasonal),
			},
		})
	}

	return &models.BenchmarkSeries{
		MetricName:  metric,
		Industry:    industry,
		CompanySize: size,
		Region:      region,
		Points:      points,
		Metadata: models.SeriesMetadata{
			Frequency:            freq,
			BaseMean:             tmpl.BaseMean,
			GrowthRate:           tmpl.AnnualGrowthRate,
			GeneratedAt:          models.DateOf(g.now()),
			GenerationID:         uuid.NewString(),
			MonotonicPercentiles: g.monotonic,
		},
	}, nil
}

// gauss draws from N(mean, std). Must be called with mu held.
func (g *Generator) gauss(mean, std float64) float64 {
	return mean + std*g.rng.NormFloat64()
}

// marker draws one percentile marker floored at zero. Must be called with mu held.
func (g *Generator) marker(mean, std float64, shape percentileShape) float64 {
	return max(0, g.gauss(mean*shape.meanRatio, std*shape.stdRatio))
}

// sampleSize draws a panel size for the company size. Must be called with mu held.
func (g *Generator) sampleSize(size models.CompanySize) int {
	r := sampleSizeRanges[size]
	return r[0] + g.rng.IntN(r[1]-r[0]+1)
}

// GenerateIndustry generates every requested metric of req, in request
// order. It is Series without a cancellation context.
func (g *Generator) GenerateIndustry(req models.BenchmarkRequest) ([]*models.BenchmarkSeries, error) {
	return g.Series(context.Background(), req)
}
