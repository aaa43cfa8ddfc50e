package models

import "github.com/shopspring/decimal"

// Purity is the karat fineness of an item (8, 10, 14, 18, 21, 22 or 24)
type Purity int

// Known purities accepted by the catalog
var KnownPurities = []Purity{8, 10, 14, 18, 21, 22, 24}

// House coefficient table: karat -> fractional fineness relative to 24k.
// These are fixed trade constants, not derived values.
var purityCoefficients = map[Purity]decimal.Decimal{
	8:  decimal.RequireFromString("0.333"),
	10: decimal.RequireFromString("0.417"),
	14: decimal.RequireFromString("0.585"),
	18: decimal.RequireFromString("0.750"),
	21: decimal.RequireFromString("0.875"),
	22: decimal.RequireFromString("0.916"),
	24: decimal.RequireFromString("1.000"),
}

// Coefficient returns the fractional fineness for a purity. Unknown purities
// fall back to purity/24 so an odd karat still yields a quote.
func (p Purity) Coefficient() decimal.Decimal {
	if c, ok := purityCoefficients[p]; ok {
		return c
	}
	return decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(24))
}

// IsKnown reports whether the purity is in the catalog set
func (p Purity) IsKnown() bool {
	_, ok := purityCoefficients[p]
	return ok
}

// ScrapCategory selects which scrap coefficient tier applies to an item
type ScrapCategory string

const (
	// ScrapCategoryHouse covers pieces fabricated in-house
	ScrapCategoryHouse ScrapCategory = "house"
	// ScrapCategoryOther covers third-party pieces, valued slightly lower
	ScrapCategoryOther ScrapCategory = "other"
)

// ScrapCoefficient returns the melt-value fineness used by the quick scrap
// calculator. The scrap desk works off a two-tier table (14k vs everything
// else) that deliberately differs from the catalog table; the two are never
// merged.
func ScrapCoefficient(p Purity, category ScrapCategory) decimal.Decimal {
	if category == ScrapCategoryOther {
		if p == 14 {
			return decimal.RequireFromString("0.575")
		}
		return decimal.RequireFromString("0.912")
	}
	if p == 14 {
		return decimal.RequireFromString("0.585")
	}
	return decimal.RequireFromString("0.916")
}
