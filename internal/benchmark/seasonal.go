package benchmark

import (
	"time"

	"github.com/seenimoa/smebench/pkg/models"
)

type seasonalBand struct {
	months []time.Month
	factor float64
}

var (
	summer   = []time.Month{time.June, time.July, time.August}
	holidays = []time.Month{time.November, time.December}
	winter   = []time.Month{time.January, time.February}
)

// seasonalBands maps industries to their monthly multipliers. The first band
// containing the month wins; months outside every band are 1.0.
var seasonalBands = map[string][]seasonalBand{
	"retail": {
		{holidays, 1.4},
		{winter, 0.8}, // post-holiday slump
	},
	"restaurant": {
		{summer, 1.2},
		{holidays, 1.3},
	},
	"hospitality": {
		{summer, 1.3},
		{winter, 0.7},
	},
	"construction": {
		{[]time.Month{time.December, time.January, time.February}, 0.7},
		{summer, 1.2},
	},
	"education": {
		{[]time.Month{time.September, time.October, time.November}, 1.2}, // fall semester
		{[]time.Month{time.June, time.July}, 0.6},
	},
}

// SeasonalFactor returns the month multiplier for an industry, centred on 1.0.
// The metric is accepted for per-metric seasonality but currently unused.
func SeasonalFactor(industry, metric string, d models.Date) float64 {
	_ = metric
	month := d.Month()
	for _, band := range seasonalBands[industry] {
		for _, bm := range band.months {
			if bm == month {
				return band.factor
			}
		}
	}
	return 1.0
}
