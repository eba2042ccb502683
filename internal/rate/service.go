package rate

import (
	"context"
	"errors"
	"fmt"

	"fxsummary/internal/adapters"
	"fxsummary/internal/domain"
	"fxsummary/internal/metrics"

	"github.com/sirupsen/logrus"
)

type RateSource interface {
	GetRates(ctx context.Context, rng domain.DateRange) (domain.RateSeries, domain.Origin, error)
}

// Service resolves a series (live source, then local snapshot) and summarizes it.
type Service struct {
	source     RateSource
	fallback   adapters.SnapshotReader
	aggregator *Aggregator
	metrics    *metrics.Metrics
}

func (s *Service) Summary(ctx context.Context, rng domain.DateRange, breakdown domain.Breakdown) (domain.Summary, domain.Origin, error) {
	series, origin, err := s.resolve(ctx, rng)
	if err != nil {
		return domain.Summary{}, "", err
	}
	s.metrics.SeriesOrigin(string(origin))

	summary, err := s.aggregator.Summarize(series, breakdown)
	if err != nil {
		return domain.Summary{}, origin, fmt.Errorf("summarize %s series for %s: %w", origin, rng, err)
	}
	return summary, origin, nil
}

func (s *Service) resolve(ctx context.Context, rng domain.DateRange) (domain.RateSeries, domain.Origin, error) {
	series, origin, err := s.source.GetRates(ctx, rng)
	if err == nil {
		return series, origin, nil
	}
	if !errors.Is(err, domain.ErrSourceExhausted) {
		return nil, "", err
	}

	logrus.WithError(err).WithField("range", rng.Key()).Error("API fetch failed, falling back to local snapshot")
	series, err = s.fallback.GetRates(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("fallback failed: %w", err)
	}
	return series, domain.OriginSnapshot, nil
}

func NewService(source RateSource, fallback adapters.SnapshotReader, aggregator *Aggregator, m *metrics.Metrics) *Service {
	return &Service{source: source, fallback: fallback, aggregator: aggregator, metrics: m}
}
