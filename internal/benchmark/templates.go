// Package benchmark is the benchmark data engine: the metric template
// registry, demographic and seasonal models, the seeded synthetic series
// generator, the caching repository and the comparison engine.
package benchmark

import (
	"github.com/seenimoa/smebench/pkg/models"
)

type metricEntry struct {
	name string
	tmpl models.MetricTemplate
}

type industryEntry struct {
	name    string
	metrics []metricEntry
}

func metricTmpl(name string, mean, std, growth float64) metricEntry {
	return metricEntry{name: name, tmpl: models.MetricTemplate{BaseMean: mean, BaseStdDev: std, AnnualGrowthRate: growth}}
}

// industryTemplates holds (mean, std dev, annual growth) per industry metric.
// Ratios are 0–1 fractions, money is USD. Order here is the listing order.
var industryTemplates = []industryEntry{
	{"retail", []metricEntry{
		metricTmpl("revenue_per_employee", 150000, 30000, 0.03),
		metricTmpl("profit_margin", 0.08, 0.02, 0.005),
		metricTmpl("inventory_turnover", 8.0, 1.5, 0.10),
		metricTmpl("customer_acquisition_cost", 50, 15, -0.02),
		metricTmpl("customer_retention_rate", 0.70, 0.10, 0.02),
	}},
	{"restaurant", []metricEntry{
		metricTmpl("revenue_per_employee", 80000, 15000, 0.02),
		metricTmpl("profit_margin", 0.06, 0.03, 0.003),
		metricTmpl("inventory_turnover", 15.0, 3.0, 0.05),
		metricTmpl("customer_acquisition_cost", 30, 10, -0.01),
		metricTmpl("labor_cost_percentage", 0.30, 0.05, -0.01),
	}},
	{"professional_services", []metricEntry{
		metricTmpl("revenue_per_employee", 200000, 50000, 0.04),
		metricTmpl("profit_margin", 0.15, 0.05, 0.007),
		metricTmpl("billable_hours_percentage", 0.65, 0.10, 0.01),
		metricTmpl("client_acquisition_cost", 2000, 500, -0.03),
		metricTmpl("client_retention_rate", 0.85, 0.08, 0.02),
	}},
	{"manufacturing", []metricEntry{
		metricTmpl("revenue_per_employee", 250000, 60000, 0.03),
		metricTmpl("profit_margin", 0.12, 0.04, 0.005),
		metricTmpl("inventory_turnover", 5.0, 1.0, 0.08),
		metricTmpl("production_efficiency", 0.75, 0.10, 0.02),
		metricTmpl("defect_rate", 0.02, 0.01, -0.05),
	}},
	{"healthcare", []metricEntry{
		metricTmpl("revenue_per_employee", 180000, 40000, 0.03),
		metricTmpl("profit_margin", 0.10, 0.03, 0.004),
		metricTmpl("patient_satisfaction", 0.82, 0.08, 0.01),
		metricTmpl("appointment_no_show_rate", 0.15, 0.05, -0.02),
		metricTmpl("patient_retention_rate", 0.80, 0.10, 0.02),
	}},
	{"technology", []metricEntry{
		metricTmpl("revenue_per_employee", 300000, 80000, 0.08),
		metricTmpl("profit_margin", 0.20, 0.08, 0.01),
		metricTmpl("customer_acquisition_cost", 500, 150, -0.04),
		metricTmpl("customer_retention_rate", 0.90, 0.05, 0.02),
		metricTmpl("monthly_recurring_revenue", 50000, 15000, 0.10),
	}},
	{"hospitality", []metricEntry{
		metricTmpl("revenue_per_employee", 100000, 25000, 0.02),
		metricTmpl("profit_margin", 0.08, 0.03, 0.003),
		metricTmpl("occupancy_rate", 0.70, 0.12, 0.02),
		metricTmpl("guest_satisfaction", 0.85, 0.08, 0.01),
		metricTmpl("revenue_per_available_room", 120, 30, 0.03),
	}},
	{"construction", []metricEntry{
		metricTmpl("revenue_per_employee", 220000, 50000, 0.03),
		metricTmpl("profit_margin", 0.10, 0.04, 0.005),
		metricTmpl("project_completion_rate", 0.85, 0.10, 0.02),
		metricTmpl("safety_incident_rate", 0.03, 0.01, -0.10),
		metricTmpl("customer_satisfaction", 0.80, 0.10, 0.02),
	}},
	{"education", []metricEntry{
		metricTmpl("revenue_per_employee", 120000, 30000, 0.02),
		metricTmpl("profit_margin", 0.05, 0.02, 0.002),
		metricTmpl("student_retention_rate", 0.85, 0.08, 0.01),
		metricTmpl("student_satisfaction", 0.80, 0.10, 0.01),
		metricTmpl("course_completion_rate", 0.75, 0.12, 0.02),
	}},
	{"real_estate", []metricEntry{
		metricTmpl("revenue_per_employee", 180000, 45000, 0.04),
		metricTmpl("profit_margin", 0.12, 0.04, 0.006),
		metricTmpl("occupancy_rate", 0.92, 0.05, 0.01),
		metricTmpl("tenant_retention_rate", 0.80, 0.10, 0.02),
		metricTmpl("rent_collection_rate", 0.95, 0.03, 0.01),
	}},
}

// Lookup returns the template for an industry metric.
func Lookup(industry, metric string) (models.MetricTemplate, error) {
	ind, ok := findIndustry(industry)
	if !ok {
		return models.MetricTemplate{}, &ErrUnsupportedIndustry{Industry: industry}
	}
	for _, me := range ind.metrics {
		if me.name == metric {
			return me.tmpl, nil
		}
	}
	return models.MetricTemplate{}, &ErrUnsupportedMetric{Industry: industry, Metric: metric}
}

// Industries lists every supported industry.
func Industries() []string {
	out := make([]string, len(industryTemplates))
	for i, ind := range industryTemplates {
		out[i] = ind.name
	}
	return out
}

// Metrics lists the metrics of an industry in registry order, or nil when
// the industry is unknown.
func Metrics(industry string) []string {
	ind, ok := findIndustry(industry)
	if !ok {
		return nil
	}
	out := make([]string, len(ind.metrics))
	for i, me := range ind.metrics {
		out[i] = me.name
	}
	return out
}

// HasIndustry reports whether the registry knows the industry.
func HasIndustry(industry string) bool {
	_, ok := findIndustry(industry)
	return ok
}

// IndustryDetails describes the metrics, sizes and regions available for an industry.
func IndustryDetails(industry string) (models.IndustryInfo, error) {
	metrics := Metrics(industry)
	if metrics == nil {
		return models.IndustryInfo{}, &ErrUnsupportedIndustry{Industry: industry}
	}
	return models.IndustryInfo{
		Industry:         industry,
		AvailableMetrics: metrics,
		MetricCount:      len(metrics),
		SupportedSizes:   append([]models.CompanySize(nil), models.CompanySizes...),
		SupportedRegions: append([]models.Region(nil), models.Regions...),
	}, nil
}

func findIndustry(name string) (industryEntry, bool) {
	for _, ind := range industryTemplates {
		if ind.name == name {
			return ind, true
		}
	}
	return industryEntry{}, false
}
