package rate

import (
	"context"
	"time"

	"fxsummary/internal/adapters"
	"fxsummary/internal/domain"
	"fxsummary/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// CachingSource serves rate series from the range cache, falling through to a retried remote fetch.
// Concurrent misses for the same range share one fetch.
type CachingSource struct {
	fetcher        adapters.RateFetcher
	cache          adapters.RangeCache
	policy         RetryPolicy
	overallTimeout time.Duration
	metrics        *metrics.Metrics
	group          singleflight.Group
}

func NewCachingSource(fetcher adapters.RateFetcher, cache adapters.RangeCache, policy RetryPolicy, overallTimeout time.Duration, m *metrics.Metrics) *CachingSource {
	return &CachingSource{
		fetcher:        fetcher,
		cache:          cache,
		policy:         policy,
		overallTimeout: overallTimeout,
		metrics:        m,
	}
}

// GetRates fails with *domain.SourceExhaustedError only after a cache miss and all attempts failing.
func (s *CachingSource) GetRates(ctx context.Context, rng domain.DateRange) (domain.RateSeries, domain.Origin, error) {
	if series, ok := s.cache.Get(rng); ok {
		s.metrics.CacheLookup(true)
		logrus.WithField("range", rng.Key()).Debug("Rate cache hit")
		return series, domain.OriginCache, nil
	}
	s.metrics.CacheLookup(false)

	v, err, _ := s.group.Do(rng.Key(), func() (any, error) {
		// another flight may have filled the cache between our lookup and now
		if series, ok := s.cache.Get(rng); ok {
			return flightResult{series: series, origin: domain.OriginCache}, nil
		}
		series, err := s.fetchAndStore(ctx, rng)
		if err != nil {
			return nil, err
		}
		return flightResult{series: series, origin: domain.OriginRemote}, nil
	})
	if err != nil {
		return nil, "", err
	}
	res := v.(flightResult)
	return res.series.Clone(), res.origin, nil
}

type flightResult struct {
	series domain.RateSeries
	origin domain.Origin
}

func (s *CachingSource) fetchAndStore(ctx context.Context, rng domain.DateRange) (domain.RateSeries, error) {
	// the flight is shared, so one caller going away must not cancel it for the rest
	fetchCtx := context.WithoutCancel(ctx)
	if s.overallTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, s.overallTimeout)
		defer cancel()
	}

	log := logrus.WithFields(logrus.Fields{"fetch_id": uuid.NewString(), "range": rng.Key()})

	var series domain.RateSeries
	attempts, err := s.policy.Do(fetchCtx, func(ctx context.Context, attempt int) error {
		log.WithField("attempt", attempt).Info("Fetching rates from upstream")
		fetched, fetchErr := s.fetcher.FetchRates(ctx, rng)
		if fetchErr != nil {
			s.metrics.FetchAttempt(false)
			log.WithError(fetchErr).WithField("attempt", attempt).Warn("Rate fetch attempt failed")
			return fetchErr
		}
		s.metrics.FetchAttempt(true)
		series = fetched
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("attempts", attempts).Error("Rate fetch exhausted")
		return nil, &domain.SourceExhaustedError{Attempts: attempts, Cause: err}
	}

	s.cache.Set(rng, series)
	return series, nil
}
