package benchmark

import (
	"errors"
	"fmt"

	"github.com/seenimoa/smebench/pkg/models"
)

// ErrUnsupportedIndustry is returned when an industry has no templates.
type ErrUnsupportedIndustry struct {
	Industry string
}

func (e *ErrUnsupportedIndustry) Error() string {
	return fmt.Sprintf("unsupported industry %q", e.Industry)
}

// ErrUnsupportedMetric is returned when an industry does not define a metric.
type ErrUnsupportedMetric struct {
	Industry string
	Metric   string
}

func (e *ErrUnsupportedMetric) Error() string {
	return fmt.Sprintf("metric %q not available for industry %q", e.Metric, e.Industry)
}

// ErrNoBenchmarkData is returned when a valid request yields nothing to compare against.
type ErrNoBenchmarkData struct {
	Metric string
	Period models.Date // zero when the latest point was requested
}

func (e *ErrNoBenchmarkData) Error() string {
	if e.Period.IsZero() {
		return fmt.Sprintf("no benchmark data for metric %q", e.Metric)
	}
	return fmt.Sprintf("no benchmark data for metric %q at period %s", e.Metric, e.Period)
}

// ErrInvalidDateRange is returned when the end date precedes the start date.
type ErrInvalidDateRange struct {
	Start, End models.Date
}

func (e *ErrInvalidDateRange) Error() string {
	return fmt.Sprintf("invalid date range: end %s is before start %s", e.End, e.Start)
}

// ErrorKind separates caller mistakes from missing data so the API layer
// can choose a status code.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNoData     ErrorKind = "no_data"
	KindInternal   ErrorKind = "internal"
)

// Classify maps an error (possibly wrapped) onto its ErrorKind.
func Classify(err error) ErrorKind {
	var (
		industry *ErrUnsupportedIndustry
		metric   *ErrUnsupportedMetric
		enum     *models.ErrInvalidEnum
		dates    *ErrInvalidDateRange
		noData   *ErrNoBenchmarkData
	)
	switch {
	case errors.As(err, &industry), errors.As(err, &metric),
		errors.As(err, &enum), errors.As(err, &dates):
		return KindValidation
	case errors.As(err, &noData):
		return KindNoData
	}
	return KindInternal
}
