package benchmark

import "github.com/seenimoa/smebench/pkg/models"

// sizeMultipliers scale both mean and spread: small firms sit ~15% below
// the medium baseline, large ones ~15% above.
var sizeMultipliers = map[models.CompanySize]float64{
	models.SizeSmall:  0.85,
	models.SizeMedium: 1.00,
	models.SizeLarge:  1.15,
}

// regionMultipliers scale the mean only.
var regionMultipliers = map[models.Region]float64{
	models.RegionNational:  1.00,
	models.RegionNortheast: 1.12,
	models.RegionWest:      1.10,
	models.RegionMidwest:   0.95,
	models.RegionSoutheast: 0.93,
	models.RegionSouthwest: 0.97,
}

// SizeMultiplier returns the multiplier for a company size (1.0 if unknown).
func SizeMultiplier(size models.CompanySize) float64 {
	if v, ok := sizeMultipliers[size]; ok {
		return v
	}
	return 1.0
}

// RegionMultiplier returns the multiplier for a region (1.0 if unknown).
func RegionMultiplier(region models.Region) float64 {
	if v, ok := regionMultipliers[region]; ok {
		return v
	}
	return 1.0
}

// Adjust applies company-size and region multipliers to a template.
// Region moves the mean but leaves the standard deviation alone.
func Adjust(t models.MetricTemplate, size models.CompanySize, region models.Region) (mean, stdDev float64) {
	sm := SizeMultiplier(size)
	mean = t.BaseMean * sm * RegionMultiplier(region)
	stdDev = t.BaseStdDev * sm
	return mean, stdDev
}
