package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/seenimoa/smebench/pkg/models"
)

// apiValidate checks request DTOs. Enum-like fields are lowercased by
// normalize before validation, so oneof matches case-insensitively.
var apiValidate = validator.New(validator.WithRequiredStructEnabled())

// APIResponse is the standard envelope for every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"` // "validation", "no_data" or "internal" on errors
}

// SeriesRequest is the body for POST /api/v1/benchmarks/data.
type SeriesRequest struct {
	Industry    string   `json:"industry"     validate:"required"`
	CompanySize string   `json:"company_size" validate:"required,oneof=small medium large"`
	Region      string   `json:"region"       validate:"required,oneof=national northeast southeast midwest west southwest"`
	Metrics     []string `json:"metrics"      validate:"omitempty,max=50,dive,required"`
	StartDate   string   `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date"     validate:"omitempty,datetime=2006-01-02"`
	Frequency   string   `json:"frequency"    validate:"omitempty,oneof=monthly quarterly"`
}

func (r *SeriesRequest) normalize() {
	r.Industry = strings.ToLower(strings.TrimSpace(r.Industry))
	r.CompanySize = strings.ToLower(strings.TrimSpace(r.CompanySize))
	r.Region = strings.ToLower(strings.TrimSpace(r.Region))
	r.Frequency = strings.ToLower(strings.TrimSpace(r.Frequency))
}

// toModel converts a validated request into an engine request.
func (r SeriesRequest) toModel() (models.BenchmarkRequest, error) {
	start, err := models.ParseDate(r.StartDate)
	if err != nil {
		return models.BenchmarkRequest{}, err
	}
	end, err := models.ParseDate(r.EndDate)
	if err != nil {
		return models.BenchmarkRequest{}, err
	}
	return models.BenchmarkRequest{
		Industry:    r.Industry,
		CompanySize: models.CompanySize(r.CompanySize),
		Region:      models.Region(r.Region),
		Metrics:     r.Metrics,
		StartDate:   start,
		EndDate:     end,
		Frequency:   models.Frequency(r.Frequency),
	}, nil
}

// CompareRequest is the body for POST /api/v1/benchmarks/compare.
type CompareRequest struct {
	UserValues  map[string]float64 `json:"user_values"  validate:"required,min=1,max=50"`
	Industry    string             `json:"industry"     validate:"required"`
	CompanySize string             `json:"company_size" validate:"required,oneof=small medium large"`
	Region      string             `json:"region"       validate:"required,oneof=national northeast southeast midwest west southwest"`
	Period      string             `json:"period"       validate:"omitempty,datetime=2006-01-02"`
}

func (r *CompareRequest) normalize() {
	r.Industry = strings.ToLower(strings.TrimSpace(r.Industry))
	r.CompanySize = strings.ToLower(strings.TrimSpace(r.CompanySize))
	r.Region = strings.ToLower(strings.TrimSpace(r.Region))
}

// toModel converts a validated request into an engine request and an
// optional period (nil means the latest point).
func (r CompareRequest) toModel() (models.BenchmarkRequest, *models.Date, error) {
	req := models.BenchmarkRequest{
		Industry:    r.Industry,
		CompanySize: models.CompanySize(r.CompanySize),
		Region:      models.Region(r.Region),
	}
	if r.Period == "" {
		return req, nil, nil
	}
	period, err := models.ParseDate(r.Period)
	if err != nil {
		return req, nil, err
	}
	return req, &period, nil
}

// ComparisonView is a comparison result plus its rendered reading.
type ComparisonView struct {
	models.ComparisonResult
	InterpretationText string `json:"interpretation_text"`
}

// CompareResponse is the data of POST /api/v1/benchmarks/compare.
type CompareResponse struct {
	Results []ComparisonView       `json:"results"`
	Skipped []models.SkippedMetric `json:"skipped"`
}

// IndustriesResponse is the data of GET /api/v1/benchmarks/industries.
type IndustriesResponse struct {
	Industries []string `json:"industries"`
	Count      int      `json:"count"`
}

// MetricsResponse is the data of GET /api/v1/benchmarks/metrics/{industry}.
type MetricsResponse struct {
	Industry string   `json:"industry"`
	Metrics  []string `json:"metrics"`
	Count    int      `json:"count"`
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "datetime":
			parts = append(parts, field+" must be a date in YYYY-MM-DD format")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

// jsonFieldName converts a Go field name like CompanySize to company_size.
func jsonFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
