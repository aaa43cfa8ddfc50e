package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

const defaultFeedURL = "https://finans.truncgil.com/v4/today.json"

// TruncgilFeedProvider fetches the gram-gold spot price over HTTP. It accepts
// the current gram-gold payload, the legacy general-currency payload with
// Turkish-locale decimal strings, and an alternative data{buying,selling}
// payload; anything else is ErrInvalidFeedResponse.
type TruncgilFeedProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewTruncgilFeedProvider creates a feed provider against the default endpoint
func NewTruncgilFeedProvider() GoldFeedProvider {
	return &TruncgilFeedProvider{
		baseURL:    defaultFeedURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *TruncgilFeedProvider) FetchSpot(ctx context.Context) (*models.GoldPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gold price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gold price feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}
	return parseFeedResponse(body)
}

// gramGoldPayload is the primary feed shape: numeric per-gram prices
type gramGoldPayload struct {
	Buying  float64 `json:"Buying"`
	Selling float64 `json:"Selling"`
}

// legacyGoldPayload is the old general-currency shape: Turkish-locale strings
type legacyGoldPayload struct {
	Buying  string `json:"Alış"`
	Selling string `json:"Satış"`
}

type altDataPayload struct {
	Buying  float64 `json:"buying"`
	Selling float64 `json:"selling"`
}

func parseFeedResponse(body []byte) (*models.GoldPrice, error) {
	var raw struct {
		GRA  *gramGoldPayload   `json:"GRA"`
		GA   *legacyGoldPayload `json:"GA"`
		Data *altDataPayload    `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidFeedResponse, err)
	}

	switch {
	case raw.GRA != nil:
		return &models.GoldPrice{
			Currency:  "TRY",
			Buying:    decimal.NewFromFloat(raw.GRA.Buying),
			Selling:   decimal.NewFromFloat(raw.GRA.Selling),
			Timestamp: time.Now(),
		}, nil
	case raw.GA != nil:
		buying, err := ParseTurkishPrice(raw.GA.Buying)
		if err != nil {
			return nil, fmt.Errorf("%w: buying: %v", apperrors.ErrInvalidFeedResponse, err)
		}
		selling, err := ParseTurkishPrice(raw.GA.Selling)
		if err != nil {
			return nil, fmt.Errorf("%w: selling: %v", apperrors.ErrInvalidFeedResponse, err)
		}
		return &models.GoldPrice{
			Currency:  "TRY",
			Buying:    buying,
			Selling:   selling,
			Timestamp: time.Now(),
		}, nil
	case raw.Data != nil:
		return &models.GoldPrice{
			Currency:  "TRY",
			Buying:    decimal.NewFromFloat(raw.Data.Buying),
			Selling:   decimal.NewFromFloat(raw.Data.Selling),
			Timestamp: time.Now(),
		}, nil
	}
	return nil, apperrors.ErrInvalidFeedResponse
}

// ParseTurkishPrice parses a Turkish-locale decimal string where "." is the
// thousands separator and "," the decimal separator: "2.850,50" -> 2850.50.
// A missing value parses as zero, matching the legacy feed's behavior.
func ParseTurkishPrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price string %q", s)
	}
	return d, nil
}
