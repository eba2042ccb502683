package adapters

import (
	"context"
	"fxsummary/internal/domain"
)

type RateFetcher interface {
	FetchRates(ctx context.Context, rng domain.DateRange) (domain.RateSeries, error)
}

type RangeCache interface {
	Get(rng domain.DateRange) (domain.RateSeries, bool)
	Set(rng domain.DateRange, series domain.RateSeries)
	PurgeExpired() int
	Len() int
}

type SnapshotReader interface {
	GetRates(ctx context.Context) (domain.RateSeries, error)
}
