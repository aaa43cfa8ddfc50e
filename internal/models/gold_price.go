package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PriceProvenance describes where the current gold price came from
type PriceProvenance string

const (
	ProvenanceLive     PriceProvenance = "live"
	ProvenanceCached   PriceProvenance = "cached"
	ProvenanceManual   PriceProvenance = "manual"
	ProvenanceFallback PriceProvenance = "fallback"
)

// GoldPrice represents the per-gram price of 24-karat gold at a point in time.
// Buying is used for scrap/buy-back quotes, Selling for customer-facing quotes.
type GoldPrice struct {
	Currency  string          `json:"currency"`
	Buying    decimal.Decimal `json:"buying"`
	Selling   decimal.Decimal `json:"selling"`
	Timestamp time.Time       `json:"timestamp"`
}

func (p *GoldPrice) Validate() error {
	if p.Currency == "" {
		return errors.New("currency is required")
	}
	if p.Buying.IsNegative() {
		return errors.New("buying price must be non-negative")
	}
	if p.Selling.IsNegative() {
		return errors.New("selling price must be non-negative")
	}
	if p.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	return nil
}

// GoldPriceStatus is the API view of the price source state
type GoldPriceStatus struct {
	Price           *GoldPrice      `json:"price"`
	Provenance      PriceProvenance `json:"provenance"`
	CacheValid      bool            `json:"cache_valid"`
	CacheAgeMinutes int             `json:"cache_age_minutes"`
	ManualOverride  bool            `json:"manual_override"`
}

// ManualGoldPrice is the persisted operator-pinned override row
type ManualGoldPrice struct {
	ID        int             `json:"id" gorm:"primaryKey"`
	Currency  string          `json:"currency"`
	Buying    decimal.Decimal `json:"buying" gorm:"type:decimal(20,8)"`
	Selling   decimal.Decimal `json:"selling" gorm:"type:decimal(20,8)"`
	CreatedAt time.Time       `json:"created_at"`
}

func (ManualGoldPrice) TableName() string { return "manual_gold_prices" }

// GoldPriceSnapshot is a persisted record of a fetched or overridden price,
// kept so a restart can reuse the last known value before the feed answers.
type GoldPriceSnapshot struct {
	ID        int             `json:"id" gorm:"primaryKey"`
	Currency  string          `json:"currency"`
	Buying    decimal.Decimal `json:"buying" gorm:"type:decimal(20,8)"`
	Selling   decimal.Decimal `json:"selling" gorm:"type:decimal(20,8)"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	CreatedAt time.Time       `json:"created_at"`
}

func (GoldPriceSnapshot) TableName() string { return "gold_price_snapshots" }
