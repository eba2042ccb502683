package rate

import (
	"fxsummary/internal/domain"
	"maps"
	"slices"
)

// Aggregator turns a rate series into per-day changes and range totals for one target currency.
type Aggregator struct {
	currency string
}

func NewAggregator(currency string) *Aggregator {
	return &Aggregator{currency: currency}
}

// Summarize never rounds; a zero previous rate yields a zero change instead of dividing by it.
func (a *Aggregator) Summarize(series domain.RateSeries, breakdown domain.Breakdown) (domain.Summary, error) {
	if len(series) == 0 {
		return domain.Summary{}, domain.ErrEmptySeries
	}

	// ISO dates sort lexically in calendar order
	dates := slices.Sorted(maps.Keys(series))

	var days []domain.DailyRate
	if breakdown == domain.BreakdownDay {
		days = make([]domain.DailyRate, 0, len(dates))
	}

	var (
		sum, prev      float64
		first, current float64
	)
	for i, date := range dates {
		rate, ok := series[date][a.currency]
		if !ok {
			return domain.Summary{}, &domain.MissingCurrencyError{Date: date, Currency: a.currency}
		}

		var pctChange *float64
		if i == 0 {
			first = rate
		} else {
			change := percentChange(prev, rate)
			pctChange = &change
		}
		if days != nil {
			days = append(days, domain.DailyRate{Date: date, Rate: rate, PctChange: pctChange})
		}

		sum += rate
		prev = rate
		current = rate
	}

	return domain.Summary{
		Days: days,
		Totals: domain.SummaryTotals{
			StartRate:      first,
			EndRate:        current,
			TotalPctChange: percentChange(first, current),
			MeanRate:       sum / float64(len(dates)),
		},
	}, nil
}

func percentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
