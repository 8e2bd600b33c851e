package models

import (
	"fmt"
	"strings"
)

// ErrInvalidEnum is returned when a string does not name a known enum value.
type ErrInvalidEnum struct {
	Kind    string   // e.g. "company_size"
	Value   string   // the rejected input
	Allowed []string // valid values, in declaration order
}

func (e *ErrInvalidEnum) Error() string {
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Kind, e.Value, strings.Join(e.Allowed, ", "))
}

// normalize lowercases and trims an enum string before matching.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// --- Company size ---

// CompanySize classifies a business by headcount.
type CompanySize string

const (
	SizeSmall  CompanySize = "small"  // <50 employees
	SizeMedium CompanySize = "medium" // 50-250 employees
	SizeLarge  CompanySize = "large"  // >250 employees
)

// CompanySizes lists every size in declaration order.
var CompanySizes = []CompanySize{SizeSmall, SizeMedium, SizeLarge}

// ParseCompanySize parses a size name, case-insensitively.
func ParseCompanySize(s string) (CompanySize, error) {
	v := CompanySize(normalize(s))
	for _, c := range CompanySizes {
		if v == c {
			return c, nil
		}
	}
	return "", &ErrInvalidEnum{Kind: "company_size", Value: s, Allowed: enumStrings(CompanySizes)}
}

// UnmarshalText rejects unknown sizes.
func (s *CompanySize) UnmarshalText(b []byte) error {
	v, err := ParseCompanySize(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// --- Region ---

// Region is a US geographic region.
type Region string

const (
	RegionNational  Region = "national"
	RegionNortheast Region = "northeast"
	RegionSoutheast Region = "southeast"
	RegionMidwest   Region = "midwest"
	RegionWest      Region = "west"
	RegionSouthwest Region = "southwest"
)

// Regions lists every region in declaration order.
var Regions = []Region{RegionNational, RegionNortheast, RegionSoutheast, RegionMidwest, RegionWest, RegionSouthwest}

// ParseRegion parses a region name, case-insensitively.
func ParseRegion(s string) (Region, error) {
	v := Region(normalize(s))
	for _, r := range Regions {
		if v == r {
			return r, nil
		}
	}
	return "", &ErrInvalidEnum{Kind: "region", Value: s, Allowed: enumStrings(Regions)}
}

// UnmarshalText rejects unknown regions.
func (r *Region) UnmarshalText(b []byte) error {
	v, err := ParseRegion(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// --- Data source ---

// DataSource identifies where a benchmark point came from.
type DataSource string

const (
	SourceSynthetic       DataSource = "synthetic"
	SourceExternal        DataSource = "external"
	SourceUserContributed DataSource = "user_contributed"
)

// --- Frequency ---

// Frequency is the spacing between consecutive points in a series.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

// ParseFrequency parses a frequency name. Empty input means monthly.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(normalize(s)) {
	case "", FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyQuarterly:
		return FrequencyQuarterly, nil
	}
	return "", &ErrInvalidEnum{Kind: "frequency", Value: s, Allowed: []string{"monthly", "quarterly"}}
}

// StepMonths returns the number of calendar months between periods.
func (f Frequency) StepMonths() int {
	if f == FrequencyQuarterly {
		return 3
	}
	return 1
}

// --- Interpretation ---

// Interpretation is the qualitative band a user value falls into.
type Interpretation string

const (
	SignificantlyBelow Interpretation = "significantly_below" // <10th percentile
	BelowAverage       Interpretation = "below_average"       // 10th-25th percentile
	Average            Interpretation = "average"             // 25th-75th percentile
	AboveAverage       Interpretation = "above_average"       // 75th-90th percentile
	SignificantlyAbove Interpretation = "significantly_above" // >=90th percentile
)

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
