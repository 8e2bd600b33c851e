package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/smebench/pkg/models"
)

func sampleSeries() []*models.BenchmarkSeries {
	return []*models.BenchmarkSeries{{
		MetricName:  "profit_margin",
		Industry:    "retail",
		CompanySize: models.SizeSmall,
		Region:      models.RegionWest,
		Points: []models.BenchmarkPoint{
			{
				Period: models.NewDate(2024, time.January, 1),
				Value:  0.08, P10: lo.ToPtr(0.05), P25: lo.ToPtr(0.07),
				P75: lo.ToPtr(0.09), P90: lo.ToPtr(0.11), SampleSize: 120,
			},
			{Period: models.NewDate(2024, time.February, 1), Value: 0.085, SampleSize: 98},
		},
	}}
}

func TestNewPrinterNotStyledForBuffer(t *testing.T) {
	assert.False(t, NewPrinter(&bytes.Buffer{}).Styled())
}

func TestPlainList(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).List("Industries", []string{"retail", "technology"})
	assert.Equal(t, "retail\ntechnology\n", buf.String())
}

func TestPlainSeries(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).Series(sampleSeries())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "metric\tperiod\tvalue\tp10\tp25\tp75\tp90\tn", lines[0])
	assert.Equal(t, "profit_margin\t2024-01-01\t8.00%\t5.00%\t7.00%\t9.00%\t11.00%\t120", lines[1])
	assert.Equal(t, "profit_margin\t2024-02-01\t8.50%\t-\t-\t-\t-\t98", lines[2])
}

func TestPlainComparisons(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).Comparisons(models.BatchComparison{
		Results: []models.ComparisonResult{{
			MetricName: "revenue_per_employee", UserValue: 175000, BenchmarkValue: 150000,
			PercentageDifference: 16.67, PercentileRank: lo.ToPtr(81),
			Interpretation: models.AboveAverage,
		}},
		Skipped: []models.SkippedMetric{{Metric: "bogus", Kind: "validation", Reason: "not available"}},
	})

	out := buf.String()
	assert.Contains(t, out, "revenue_per_employee\t175000\t150000\t16.67\t81\tabove_average\n")
	assert.Contains(t, out, "bogus\tskipped\tvalidation\tnot available\n")
}

func TestStyledSeriesAndComparisons(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{w: &buf, styled: true}
	p.Series(sampleSeries())
	p.Comparisons(models.BatchComparison{
		Results: []models.ComparisonResult{{
			MetricName: "profit_margin", UserValue: 0.05, BenchmarkValue: 0.08,
			PercentageDifference: -37.5, Interpretation: models.SignificantlyBelow,
			Period: models.NewDate(2024, time.June, 1),
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "profit_margin · retail · small · west")
	assert.Contains(t, out, "2024-02-01")
	assert.Contains(t, out, "Benchmark:  8.00% (2024-06-01)")
	assert.Contains(t, out, "Percentile: -")
	assert.Contains(t, out, "Difference: -37.50%")
}

func TestKeyValues(t *testing.T) {
	var buf bytes.Buffer
	NewPlainPrinter(&buf).KeyValues([][2]string{{"seed", "42"}, {"frequency", "monthly"}})
	assert.Equal(t, "seed\t42\nfrequency\tmonthly\n", buf.String())
}
