package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RateProvider resolves the FX rate between two currencies on a given date.
// Lookup returns the base-currency-per-unit-of-target rate, or an error when
// the rate cannot be resolved. Callers treat a failed lookup the same as a
// missing rate: the expense is stored without one and excluded from balances.
type RateProvider interface {
	Lookup(ctx context.Context, baseCurrency, targetCurrency string, date time.Time) (float64, error)
}

// HTTPProvider fetches historical ECB reference rates from a
// Frankfurter-compatible API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider against the given API base URL
// (e.g. https://api.frankfurter.dev/v1).
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Lookup fetches the rate converting targetCurrency into baseCurrency on date.
func (p *HTTPProvider) Lookup(ctx context.Context, baseCurrency, targetCurrency string, date time.Time) (float64, error) {
	u := fmt.Sprintf("%s/%s?base=%s&symbols=%s",
		p.baseURL,
		date.Format("2006-01-02"),
		url.QueryEscape(targetCurrency),
		url.QueryEscape(baseCurrency),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate lookup returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := body.Rates[baseCurrency]
	if !ok {
		return 0, fmt.Errorf("no rate for %s/%s on %s", baseCurrency, targetCurrency, date.Format("2006-01-02"))
	}
	return rate, nil
}

// StaticProvider serves rates from a fixed in-memory table, keyed
// "TARGET/BASE". Used in tests and offline deployments.
type StaticProvider struct {
	rates map[string]float64
}

// NewStaticProvider creates a provider over the given rate table.
func NewStaticProvider(rates map[string]float64) *StaticProvider {
	return &StaticProvider{rates: rates}
}

// Lookup returns the configured rate, ignoring the date.
func (p *StaticProvider) Lookup(_ context.Context, baseCurrency, targetCurrency string, _ time.Time) (float64, error) {
	rate, ok := p.rates[targetCurrency+"/"+baseCurrency]
	if !ok {
		return 0, fmt.Errorf("no rate for %s/%s", targetCurrency, baseCurrency)
	}
	return rate, nil
}
