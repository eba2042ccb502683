package rate

import (
	"context"

	"fxsummary/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockRateFetcher struct{ mock.Mock }

func (m *MockRateFetcher) FetchRates(ctx context.Context, rng domain.DateRange) (domain.RateSeries, error) {
	args := m.Called(ctx, rng)
	series, _ := args.Get(0).(domain.RateSeries)
	return series, args.Error(1)
}

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) GetRates(ctx context.Context, rng domain.DateRange) (domain.RateSeries, domain.Origin, error) {
	args := m.Called(ctx, rng)
	series, _ := args.Get(0).(domain.RateSeries)
	origin, _ := args.Get(1).(domain.Origin)
	return series, origin, args.Error(2)
}

type MockSnapshotReader struct{ mock.Mock }

func (m *MockSnapshotReader) GetRates(ctx context.Context) (domain.RateSeries, error) {
	args := m.Called(ctx)
	series, _ := args.Get(0).(domain.RateSeries)
	return series, args.Error(1)
}

type MockRangeCache struct{ mock.Mock }

func (m *MockRangeCache) Get(rng domain.DateRange) (domain.RateSeries, bool) {
	args := m.Called(rng)
	series, _ := args.Get(0).(domain.RateSeries)
	return series, args.Bool(1)
}

func (m *MockRangeCache) Set(rng domain.DateRange, series domain.RateSeries) {
	m.Called(rng, series)
}

func (m *MockRangeCache) PurgeExpired() int {
	return m.Called().Int(0)
}

func (m *MockRangeCache) Len() int {
	return m.Called().Int(0)
}
