package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType discriminates which weight formula applies
type ProductType string

const (
	// ProductTypeNecklaceBracelet derives weight from a cut length
	ProductTypeNecklaceBracelet ProductType = "necklace-bracelet"
	// ProductTypeRingEarring derives weight from a repeating-unit row count
	ProductTypeRingEarring ProductType = "ring-earring"
	// ProductTypeDirectWeight passes a weighed gram figure through unchanged
	ProductTypeDirectWeight ProductType = "direct-weight"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeNecklaceBracelet, ProductTypeRingEarring, ProductTypeDirectWeight:
		return true
	}
	return false
}

// ConstructionParams is the closed set of per-type construction parameters.
// Formula dispatch is an exhaustive type switch over these three variants.
type ConstructionParams interface {
	construction()
}

// LinearParams describes a cut-length item (chain, bracelet):
// weight = ((cutLength - trim) * wirePerCm) + extra
type LinearParams struct {
	CutLengthCm     decimal.Decimal `json:"cut_length_cm"`
	WireWeightPerCm decimal.Decimal `json:"wire_weight_per_cm"`
	TrimLengthCm    decimal.Decimal `json:"trim_length_cm"`
	ExtraWeight     decimal.Decimal `json:"extra_weight"`
}

// RowCountParams describes a repeating-unit item (ring, earring):
// weight = (row * wirePerCm) + extra
type RowCountParams struct {
	Row             int             `json:"row"`
	WireWeightPerCm decimal.Decimal `json:"wire_weight_per_cm"`
	ExtraWeight     decimal.Decimal `json:"extra_weight"`
}

// DirectWeightParams describes a simple item quoted by its weighed grams
type DirectWeightParams struct {
	GrossWeight decimal.Decimal `json:"gross_weight"`
}

func (LinearParams) construction()       {}
func (RowCountParams) construction()     {}
func (DirectWeightParams) construction() {}

// CalculationInput is a quote request against the catalog
type CalculationInput struct {
	ModelID     string          `json:"model_id"`
	ProductType ProductType     `json:"product_type"`
	Purity      Purity          `json:"purity"`
	Row         int             `json:"row"`
	CutLengthCm decimal.Decimal `json:"cut_length_cm"`
	// GrossWeight is only consulted for direct-weight items
	GrossWeight decimal.Decimal `json:"gross_weight"`
}

func (in *CalculationInput) Validate() error {
	if in.ModelID == "" && in.ProductType != ProductTypeDirectWeight {
		return errors.New("model_id is required")
	}
	if !in.ProductType.Valid() {
		return errors.New("product_type must be one of necklace-bracelet, ring-earring, direct-weight")
	}
	if in.Purity <= 0 {
		return errors.New("purity must be positive")
	}
	return nil
}

// CalculationBreakdown records the resolved inputs so a quote can be
// reproduced later by re-running the same formula.
type CalculationBreakdown struct {
	ProductType     ProductType     `json:"product_type"`
	CutLengthCm     decimal.Decimal `json:"cut_length_cm,omitempty"`
	Row             int             `json:"row,omitempty"`
	WireWeightPerCm decimal.Decimal `json:"wire_weight_per_cm"`
	TrimLengthCm    decimal.Decimal `json:"trim_length_cm"`
	ExtraWeight     decimal.Decimal `json:"extra_weight"`
	GrossWeight     decimal.Decimal `json:"gross_weight,omitempty"`
}

// CalculationResult is a finalized quote. WeightGrams and the monetary
// figures are rounded to 2 decimal places, half away from zero; nothing is
// rounded before the final step.
type CalculationResult struct {
	WeightGrams       decimal.Decimal      `json:"weight_grams"`
	TotalPrice        decimal.Decimal      `json:"total_price"`
	ScrapPrice        decimal.Decimal      `json:"scrap_price"`
	SellPricePerGram  decimal.Decimal      `json:"sell_price_per_gram"`
	BuyPricePerGram   decimal.Decimal      `json:"buy_price_per_gram"`
	PurityCoefficient decimal.Decimal      `json:"purity_coefficient"`
	LaborMillesimal   decimal.Decimal      `json:"labor_millesimal"`
	Formula           string               `json:"formula"`
	Breakdown         CalculationBreakdown `json:"breakdown"`
	PriceProvenance   PriceProvenance      `json:"price_provenance,omitempty"`
}

// HistoryEntry is an immutable snapshot of one calculation for operator
// recall. The ledger keeps at most the 5 most recent entries, newest first.
type HistoryEntry struct {
	ID                string               `json:"id"`
	ModelID           string               `json:"model_id"`
	ModelName         string               `json:"model_name"`
	ProductType       ProductType          `json:"product_type"`
	Purity            Purity               `json:"purity"`
	WeightGrams       decimal.Decimal      `json:"weight_grams"`
	TotalPrice        decimal.Decimal      `json:"total_price"`
	ScrapPrice        decimal.Decimal      `json:"scrap_price"`
	SellPricePerGram  decimal.Decimal      `json:"sell_price_per_gram"`
	BuyPricePerGram   decimal.Decimal      `json:"buy_price_per_gram"`
	PurityCoefficient decimal.Decimal      `json:"purity_coefficient"`
	Formula           string               `json:"formula"`
	Breakdown         CalculationBreakdown `json:"breakdown"`
	CalculatedAt      time.Time            `json:"calculated_at"`
}

// ScrapQuote is one quick scrap (melt-value) calculation
type ScrapQuote struct {
	Grams           decimal.Decimal `json:"grams"`
	Purity          Purity          `json:"purity"`
	Category        ScrapCategory   `json:"category"`
	Coefficient     decimal.Decimal `json:"coefficient"`
	BuyPricePerGram decimal.Decimal `json:"buy_price_per_gram"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	CalculatedAt    time.Time       `json:"calculated_at"`
}
