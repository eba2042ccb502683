package rate

import (
	"fmt"
	"strings"
	"time"

	"fxsummary/internal/domain"
)

var (
	ErrStartRequired    = fmt.Errorf("%w: start date is required", domain.ErrValidation)
	ErrEndRequired      = fmt.Errorf("%w: end date is required", domain.ErrValidation)
	ErrStartAfterEnd    = fmt.Errorf("%w: start date must be before or equal to end date", domain.ErrValidation)
	ErrInvalidBreakdown = fmt.Errorf("%w: breakdown must be 'day' or 'none'", domain.ErrValidation)
)

type QueryValidator struct{}

func NewValidator() *QueryValidator {
	return &QueryValidator{}
}

// ValidateQuery parses the raw summary query. An empty breakdown means BreakdownNone.
func (v *QueryValidator) ValidateQuery(start, end, breakdown string) (domain.DateRange, domain.Breakdown, error) {
	startDate, err := parseDate("start", start, ErrStartRequired)
	if err != nil {
		return domain.DateRange{}, "", err
	}
	endDate, err := parseDate("end", end, ErrEndRequired)
	if err != nil {
		return domain.DateRange{}, "", err
	}
	if startDate.After(endDate) {
		return domain.DateRange{}, "", ErrStartAfterEnd
	}

	var mode domain.Breakdown
	switch domain.Breakdown(strings.ToLower(strings.TrimSpace(breakdown))) {
	case "", domain.BreakdownNone:
		mode = domain.BreakdownNone
	case domain.BreakdownDay:
		mode = domain.BreakdownDay
	default:
		return domain.DateRange{}, "", ErrInvalidBreakdown
	}

	return domain.DateRange{Start: startDate, End: endDate}, mode, nil
}

func parseDate(name, raw string, requiredErr error) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, requiredErr
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s date %q, expected YYYY-MM-DD", domain.ErrValidation, name, raw)
	}
	return t, nil
}
