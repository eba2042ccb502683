package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"fxsummary/internal/domain"
	"net/http"
	"net/url"
	"strings"
)

type FrankfurterClient struct {
	http    *http.Client
	baseURL string
	base    string
	target  string
}

type apiResponse struct {
	Base  string                        `json:"base"`
	Rates map[string]map[string]float64 `json:"rates"`
}

// FetchRates performs a single request for the whole range. Retries and caching live above it.
func (c *FrankfurterClient) FetchRates(ctx context.Context, rng domain.DateRange) (domain.RateSeries, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %v", domain.ErrUpstream, err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + rng.Key()
	q := u.Query()
	q.Set("from", c.base)
	q.Set("to", c.target)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request for range %s: %v", domain.ErrUpstream, rng, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request for range %s: %v", domain.ErrUpstream, rng, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d for range %s", domain.ErrUpstream, resp.StatusCode, rng)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response for range %s: %v", domain.ErrUpstream, rng, err)
	}

	if body.Rates == nil {
		return nil, fmt.Errorf("%w: response for range %s has no rates field", domain.ErrUpstream, rng)
	}

	return domain.RateSeries(body.Rates), nil
}

func NewFrankfurterClient(httpClient *http.Client, baseURL, base, target string) *FrankfurterClient {
	return &FrankfurterClient{http: httpClient, baseURL: baseURL, base: base, target: target}
}
