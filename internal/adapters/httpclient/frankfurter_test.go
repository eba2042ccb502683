package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxsummary/internal/domain"

	"github.com/stretchr/testify/require"
)

func july(day int) time.Time { return time.Date(2025, time.July, day, 0, 0, 0, 0, time.UTC) }

var testRange = domain.DateRange{Start: july(1), End: july(3)}

func TestFrankfurterClient_Success(t *testing.T) {
	var gotPath, gotFrom, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "amount": 1.0,
            "base": "EUR",
            "start_date": "2025-07-01",
            "end_date": "2025-07-03",
            "rates": {
                "2025-07-01": {"USD": 1.10},
                "2025-07-02": {"USD": 1.08},
                "2025-07-03": {"USD": 1.12}
            }
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewFrankfurterClient(srv.Client(), srv.URL+"/v1/", "EUR", "USD")

	series, err := c.FetchRates(context.Background(), testRange)
	require.NoError(t, err)
	require.Equal(t, "/v1/2025-07-01..2025-07-03", gotPath)
	require.Equal(t, "EUR", gotFrom)
	require.Equal(t, "USD", gotTo)
	require.Len(t, series, 3)
	require.InDelta(t, 1.08, series["2025-07-02"]["USD"], 1e-9)
}

func TestFrankfurterClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewFrankfurterClient(srv.Client(), srv.URL, "EUR", "USD")

	_, err := c.FetchRates(context.Background(), testRange)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrUpstream))
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.Contains(t, err.Error(), "2025-07-01..2025-07-03")
}

func TestFrankfurterClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewFrankfurterClient(srv.Client(), srv.URL, "EUR", "USD")

	_, err := c.FetchRates(context.Background(), testRange)
	require.ErrorIs(t, err, domain.ErrUpstream)
	require.Contains(t, err.Error(), "failed to decode response for range 2025-07-01..2025-07-03")
}

func TestFrankfurterClient_MissingRatesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"amount": 1.0, "base": "EUR"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewFrankfurterClient(srv.Client(), srv.URL, "EUR", "USD")

	_, err := c.FetchRates(context.Background(), testRange)
	require.ErrorIs(t, err, domain.ErrUpstream)
	require.Contains(t, err.Error(), "has no rates field")
}

func TestFrankfurterClient_BaseURLParseError(t *testing.T) {
	c := NewFrankfurterClient(&http.Client{}, "http://::1]", "EUR", "USD")
	_, err := c.FetchRates(context.Background(), testRange)
	require.ErrorIs(t, err, domain.ErrUpstream)
	require.Contains(t, err.Error(), "failed to parse base URL")
}
