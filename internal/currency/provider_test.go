package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func mustDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func TestHTTPProviderLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2025-06-15" {
			t.Errorf("path = %q, want /2025-06-15", r.URL.Path)
		}
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("base = %q, want USD", got)
		}
		if got := r.URL.Query().Get("symbols"); got != "EUR" {
			t.Errorf("symbols = %q, want EUR", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"USD","date":"2025-06-15","rates":{"EUR":0.925}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	rate, err := p.Lookup(context.Background(), "EUR", "USD", mustDate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.925 {
		t.Errorf("rate = %v, want 0.925", rate)
	}
}

func TestHTTPProviderLookupMissingSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"USD","rates":{}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	if _, err := p.Lookup(context.Background(), "EUR", "USD", mustDate()); err == nil {
		t.Error("expected error when symbol is absent from response")
	}
}

func TestHTTPProviderLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	if _, err := p.Lookup(context.Background(), "EUR", "USD", mustDate()); err == nil {
		t.Error("expected error on non-200 response")
	}
}
