package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Model represents a jewelry model family (e.g. a rope-chain pattern)
type Model struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"uniqueIndex;size:100"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (m *Model) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	if len(m.Name) > 100 {
		return errors.New("name must be 100 characters or less")
	}
	return nil
}

// Product holds the construction parameters for one (model, purity, row)
// combination: how much a centimetre of wire weighs, the trim cut off the
// measured length, the fixed extra weight (clasps, findings) and the labor
// surcharge in per-mille units.
type Product struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	ModelID         string          `json:"model_id" gorm:"index:idx_products_lookup,priority:1"`
	Purity          Purity          `json:"purity" gorm:"index:idx_products_lookup,priority:2"`
	Row             int             `json:"row" gorm:"index:idx_products_lookup,priority:3"`
	WireWeightPerCm decimal.Decimal `json:"wire_weight_per_cm" gorm:"type:decimal(12,4)"`
	TrimLengthCm    decimal.Decimal `json:"trim_length_cm" gorm:"type:decimal(12,4)"`
	ExtraWeight     decimal.Decimal `json:"extra_weight" gorm:"type:decimal(12,4)"`
	LaborMillesimal decimal.Decimal `json:"labor_millesimal" gorm:"type:decimal(12,4)"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`

	// Populated on reads that join the model
	ModelName string `json:"model_name,omitempty" gorm:"-"`
}

func (p *Product) Validate() error {
	if p.ModelID == "" {
		return errors.New("model_id is required")
	}
	if p.Purity <= 0 {
		return errors.New("purity must be positive")
	}
	if p.Row < 0 {
		return errors.New("row must be non-negative")
	}
	if p.WireWeightPerCm.IsNegative() {
		return errors.New("wire_weight_per_cm must be non-negative")
	}
	if p.TrimLengthCm.IsNegative() {
		return errors.New("trim_length_cm must be non-negative")
	}
	if p.ExtraWeight.IsNegative() {
		return errors.New("extra_weight must be non-negative")
	}
	if p.LaborMillesimal.IsNegative() {
		return errors.New("labor_millesimal must be non-negative")
	}
	return nil
}
