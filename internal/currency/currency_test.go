package currency

import "testing"

func ptr(f float64) *float64 { return &f }

func TestConvert(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		currency     string
		fxRate       *float64
		baseCurrency string
		wantAmount   int64
		wantNeedsFx  bool
	}{
		{
			name:         "same currency passes through",
			amount:       301,
			currency:     "EUR",
			fxRate:       nil,
			baseCurrency: "EUR",
			wantAmount:   301,
		},
		{
			name:         "same currency ignores a stored rate",
			amount:       500,
			currency:     "EUR",
			fxRate:       ptr(1.25),
			baseCurrency: "EUR",
			wantAmount:   500,
		},
		{
			name:         "missing rate flags instead of failing",
			amount:       1000,
			currency:     "USD",
			fxRate:       nil,
			baseCurrency: "EUR",
			wantAmount:   0,
			wantNeedsFx:  true,
		},
		{
			name:         "converts with rate",
			amount:       1000,
			currency:     "USD",
			fxRate:       ptr(0.92),
			baseCurrency: "EUR",
			wantAmount:   920,
		},
		{
			name:         "rounds half up",
			amount:       101,
			currency:     "USD",
			fxRate:       ptr(0.5), // 50.5 rounds to 51
			baseCurrency: "EUR",
			wantAmount:   51,
		},
		{
			name:         "rounds down below half",
			amount:       103,
			currency:     "USD",
			fxRate:       ptr(0.33), // 33.99 rounds to 34
			baseCurrency: "EUR",
			wantAmount:   34,
		},
		{
			name:         "identity rate",
			amount:       301,
			currency:     "USD",
			fxRate:       ptr(1.0),
			baseCurrency: "EUR",
			wantAmount:   301,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.amount, tt.currency, tt.fxRate, tt.baseCurrency)
			if got.Amount != tt.wantAmount {
				t.Errorf("Amount = %d, want %d", got.Amount, tt.wantAmount)
			}
			if got.NeedsFxRate != tt.wantNeedsFx {
				t.Errorf("NeedsFxRate = %v, want %v", got.NeedsFxRate, tt.wantNeedsFx)
			}
			if got.Currency != tt.baseCurrency {
				t.Errorf("Currency = %q, want %q", got.Currency, tt.baseCurrency)
			}
		})
	}
}

func TestStaticProviderLookup(t *testing.T) {
	p := NewStaticProvider(map[string]float64{"USD/EUR": 0.92})

	rate, err := p.Lookup(nil, "EUR", "USD", mustDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.92 {
		t.Errorf("rate = %v, want 0.92", rate)
	}

	if _, err := p.Lookup(nil, "EUR", "GBP", mustDate()); err == nil {
		t.Error("expected error for unknown pair")
	}
}
