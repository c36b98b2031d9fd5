// Package currency converts expense amounts into a trip's base currency.
//
// All amounts are integer minor units (cents). Conversion is a pure function
// over an already-resolved FX rate; looking rates up is the RateProvider's job
// and happens once at expense-creation time, never during aggregation.
package currency

import "math"

// ConversionResult is the outcome of converting one amount to base currency.
// When NeedsFxRate is true the expense carried a foreign currency without a
// resolved rate; Amount is zero and must not be trusted. This is a soft
// signal, not an error: callers decide whether to skip or surface it.
type ConversionResult struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	NeedsFxRate bool   `json:"needs_fx_rate"`
}

// Convert converts amount (minor units of currencyCode) into baseCurrency
// using fxRate, the base-currency-per-unit rate resolved at the expense date.
// Rounding is half-up, matching the behavior balances were historically
// computed with; changing the mode would shift existing balances by a cent.
func Convert(amount int64, currencyCode string, fxRate *float64, baseCurrency string) ConversionResult {
	if currencyCode == baseCurrency {
		return ConversionResult{Amount: amount, Currency: baseCurrency}
	}
	if fxRate == nil {
		return ConversionResult{Currency: baseCurrency, NeedsFxRate: true}
	}
	return ConversionResult{
		Amount:   roundHalfUp(float64(amount) * *fxRate),
		Currency: baseCurrency,
	}
}

// roundHalfUp rounds to the nearest integer with .5 going up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
