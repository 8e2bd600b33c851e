package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ════════════════════════════════════════════════════════════════════
// Date
// ════════════════════════════════════════════════════════════════════

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, time.February, d.Month())

	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	_, err = ParseDate("2024/02/29")
	assert.ErrorContains(t, err, "want YYYY-MM-DD")
}

func TestDateOfTruncates(t *testing.T) {
	d := DateOf(time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC))
	assert.True(t, d.Equal(NewDate(2024, time.March, 5)))
}

func TestDateAddMonthsClamps(t *testing.T) {
	assert.Equal(t, "2024-02-29", NewDate(2024, time.January, 31).AddMonths(1).String())
	assert.Equal(t, "2023-02-28", NewDate(2024, time.February, 29).AddMonths(-12).String())
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}

	out, err := json.Marshal(wrapper{D: NewDate(2024, time.June, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-06-01"}`, string(out))

	out, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2023-12-31"}`), &w))
	assert.Equal(t, "2023-12-31", w.D.String())

	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &w))
	assert.True(t, w.D.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"d":20231231}`), &w))
	assert.Error(t, json.Unmarshal([]byte(`{"d":"31-12-2023"}`), &w))
}

// ════════════════════════════════════════════════════════════════════
// Enums
// ════════════════════════════════════════════════════════════════════

func TestParseCompanySize(t *testing.T) {
	tests := []struct {
		in      string
		want    CompanySize
		wantErr bool
	}{
		{"small", SizeSmall, false},
		{" Medium ", SizeMedium, false},
		{"LARGE", SizeLarge, false},
		{"huge", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompanySize(tt.in)
			if tt.wantErr {
				var enumErr *ErrInvalidEnum
				require.True(t, errors.As(err, &enumErr))
				assert.Equal(t, "company_size", enumErr.Kind)
				assert.Equal(t, []string{"small", "medium", "large"}, enumErr.Allowed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRegion(t *testing.T) {
	for _, r := range Regions {
		got, err := ParseRegion(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRegion("Midwest")
	assert.NoError(t, err)
	_, err = ParseRegion("mars")
	assert.ErrorContains(t, err, `invalid region "mars"`)
}

func TestEnumUnmarshalText(t *testing.T) {
	var v struct {
		Size   CompanySize `json:"size"`
		Region Region      `json:"region"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"size":"Small","region":"WEST"}`), &v))
	assert.Equal(t, SizeSmall, v.Size)
	assert.Equal(t, RegionWest, v.Region)

	assert.Error(t, json.Unmarshal([]byte(`{"size":"tiny"}`), &v))
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("")
	require.NoError(t, err)
	assert.Equal(t, FrequencyMonthly, f)
	assert.Equal(t, 1, f.StepMonths())

	f, err = ParseFrequency("Quarterly")
	require.NoError(t, err)
	assert.Equal(t, 3, f.StepMonths())

	_, err = ParseFrequency("weekly")
	assert.Error(t, err)
}

// ════════════════════════════════════════════════════════════════════
// Series and points
// ════════════════════════════════════════════════════════════════════

func seriesOf(periods ...Date) *BenchmarkSeries {
	s := &BenchmarkSeries{MetricName: "profit_margin"}
	for i, p := range periods {
		s.Points = append(s.Points, BenchmarkPoint{Period: p, Value: float64(i + 1)})
	}
	return s
}

func TestSeriesLatest(t *testing.T) {
	s := seriesOf(
		NewDate(2024, time.March, 1),
		NewDate(2024, time.May, 1),
		NewDate(2024, time.April, 1),
	)
	p, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "2024-05-01", p.Period.String())
	assert.Equal(t, 2.0, p.Value)

	_, ok = (&BenchmarkSeries{}).Latest()
	assert.False(t, ok)
}

func TestSeriesNearest(t *testing.T) {
	s := seriesOf(
		NewDate(2024, time.January, 1),
		NewDate(2024, time.February, 1),
		NewDate(2024, time.March, 1),
	)

	p, ok := s.Nearest(NewDate(2024, time.February, 1))
	require.True(t, ok)
	assert.Equal(t, 2.0, p.Value, "exact match")

	p, _ = s.Nearest(NewDate(2024, time.February, 20))
	assert.Equal(t, "2024-03-01", p.Period.String())

	p, _ = s.Nearest(NewDate(2030, time.January, 1))
	assert.Equal(t, "2024-03-01", p.Period.String())

	// Jan 1 and Jan 3 are both one day from Jan 2; the first wins.
	tie := seriesOf(NewDate(2024, time.January, 1), NewDate(2024, time.January, 3))
	p, _ = tie.Nearest(NewDate(2024, time.January, 2))
	assert.Equal(t, "2024-01-01", p.Period.String())

	_, ok = s.At(NewDate(2024, time.February, 2))
	assert.False(t, ok)
}

func TestPointMonotonic(t *testing.T) {
	p := BenchmarkPoint{P10: lo.ToPtr(1.0), P25: lo.ToPtr(2.0), P50: lo.ToPtr(3.0), P75: lo.ToPtr(4.0), P90: lo.ToPtr(5.0)}
	assert.True(t, p.Monotonic())

	p.P75 = lo.ToPtr(2.5)
	assert.False(t, p.Monotonic())

	gaps := BenchmarkPoint{P25: lo.ToPtr(2.0), P75: lo.ToPtr(4.0)}
	assert.True(t, gaps.Monotonic())
}

func TestComparisonSummary(t *testing.T) {
	tests := []struct {
		interp Interpretation
		pct    float64
		want   string
	}{
		{SignificantlyAbove, 40, "Significantly above industry average (top 10%). Your profit_margin is 40.0% higher than the benchmark."},
		{AboveAverage, 12.34, "Above industry average. Your profit_margin is 12.3% higher than the benchmark."},
		{Average, -3.21, "Within industry average range. Your profit_margin is close to the benchmark (3.2% difference)."},
		{BelowAverage, -18, "Below industry average. Your profit_margin is 18.0% lower than the benchmark."},
		{SignificantlyBelow, -50, "Significantly below industry average (bottom 10%). Your profit_margin is 50.0% lower than the benchmark."},
		{"", 0, "Unable to interpret benchmark comparison."},
	}
	for _, tt := range tests {
		t.Run(string(tt.interp), func(t *testing.T) {
			c := ComparisonResult{MetricName: "profit_margin", PercentageDifference: tt.pct, Interpretation: tt.interp}
			assert.Equal(t, tt.want, c.Summary())
		})
	}
}
