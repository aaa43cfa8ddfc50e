package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/elizi/goldtool/internal/errors"
)

func feedServer(t *testing.T, body string) *TruncgilFeedProvider {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return &TruncgilFeedProvider{
		baseURL:    ts.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestFetchSpot_GramGoldPayload(t *testing.T) {
	p := feedServer(t, `{"Update_Date":"2026-08-29","GRA":{"Buying":2850.50,"Selling":2851.75}}`)
	price, err := p.FetchSpot(context.Background())
	if err != nil {
		t.Fatalf("FetchSpot failed: %v", err)
	}
	if !price.Buying.Equal(decimal.NewFromFloat(2850.50)) {
		t.Errorf("buying = %s, want 2850.5", price.Buying)
	}
	if !price.Selling.Equal(decimal.NewFromFloat(2851.75)) {
		t.Errorf("selling = %s, want 2851.75", price.Selling)
	}
	if price.Currency != "TRY" {
		t.Errorf("currency = %s, want TRY", price.Currency)
	}
}

func TestFetchSpot_LegacyTurkishPayload(t *testing.T) {
	p := feedServer(t, `{"GA":{"Alış":"2.850,50","Satış":"2.851,75"}}`)
	price, err := p.FetchSpot(context.Background())
	if err != nil {
		t.Fatalf("FetchSpot failed: %v", err)
	}
	if !price.Buying.Equal(decimal.RequireFromString("2850.50")) {
		t.Errorf("buying = %s, want 2850.50", price.Buying)
	}
	if !price.Selling.Equal(decimal.RequireFromString("2851.75")) {
		t.Errorf("selling = %s, want 2851.75", price.Selling)
	}
}

func TestFetchSpot_AltDataPayload(t *testing.T) {
	p := feedServer(t, `{"data":{"buying":2900.1,"selling":2901.2}}`)
	price, err := p.FetchSpot(context.Background())
	if err != nil {
		t.Fatalf("FetchSpot failed: %v", err)
	}
	if !price.Buying.Equal(decimal.NewFromFloat(2900.1)) {
		t.Errorf("buying = %s, want 2900.1", price.Buying)
	}
}

func TestFetchSpot_InvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown shape", `{"USD":{"Buying":1.0}}`},
		{"not json", `<html>maintenance</html>`},
		{"garbage legacy strings", `{"GA":{"Alış":"n/a","Satış":"n/a"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := feedServer(t, tc.body)
			_, err := p.FetchSpot(context.Background())
			if !errors.Is(err, apperrors.ErrInvalidFeedResponse) {
				t.Errorf("err = %v, want ErrInvalidFeedResponse", err)
			}
		})
	}
}

func TestFetchSpot_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	p := &TruncgilFeedProvider{baseURL: ts.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	if _, err := p.FetchSpot(context.Background()); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestParseTurkishPrice(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2.850,50", "2850.50", false},
		{"1.234.567,89", "1234567.89", false},
		{"950,25", "950.25", false},
		{"2850", "2850", false},
		{"", "0", false},
		{"abc", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTurkishPrice(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTurkishPrice(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTurkishPrice(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("ParseTurkishPrice(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
