package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

// CalculationServiceImpl implements CalculationService. The weight and price
// formulas are pure; catalog resolution and price sourcing are the only I/O.
type CalculationServiceImpl struct {
	products  repositories.ProductRepository
	catalog   repositories.ModelRepository
	goldPrice GoldPriceService
	logger    *zap.Logger

	history historyLedger
	scrap   scrapLedger
}

// NewCalculationService creates a calculation service
func NewCalculationService(products repositories.ProductRepository, catalog repositories.ModelRepository, goldPrice GoldPriceService, logger *zap.Logger) *CalculationServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculationServiceImpl{
		products:  products,
		catalog:   catalog,
		goldPrice: goldPrice,
		logger:    logger,
	}
}

// round2 rounds to 2 decimal places, half away from zero. Intermediate
// products are never rounded; only the final figure passes through here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeWeight evaluates the weight formula for one construction variant.
// The type switch is exhaustive over the closed ConstructionParams set.
func ComputeWeight(params models.ConstructionParams) (decimal.Decimal, string, error) {
	switch p := params.(type) {
	case models.LinearParams:
		if p.CutLengthCm.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, "", apperrors.ErrMissingLength
		}
		weight := p.CutLengthCm.Sub(p.TrimLengthCm).Mul(p.WireWeightPerCm).Add(p.ExtraWeight)
		formula := fmt.Sprintf("((%s - %s) * %s) + %s",
			p.CutLengthCm, p.TrimLengthCm, p.WireWeightPerCm, p.ExtraWeight)
		return weight, formula, nil
	case models.RowCountParams:
		row := decimal.NewFromInt(int64(p.Row))
		weight := row.Mul(p.WireWeightPerCm).Add(p.ExtraWeight)
		formula := fmt.Sprintf("(%d * %s) + %s", p.Row, p.WireWeightPerCm, p.ExtraWeight)
		return weight, formula, nil
	case models.DirectWeightParams:
		return p.GrossWeight, p.GrossWeight.String(), nil
	default:
		return decimal.Zero, "", fmt.Errorf("unsupported construction parameters %T", params)
	}
}

// resolved bundles everything the formulas need for one input
type resolved struct {
	params    models.ConstructionParams
	breakdown models.CalculationBreakdown
	labor     decimal.Decimal
	modelName string
}

func (s *CalculationServiceImpl) resolve(ctx context.Context, input *models.CalculationInput) (*resolved, error) {
	if input.ProductType == models.ProductTypeDirectWeight {
		return &resolved{
			params: models.DirectWeightParams{GrossWeight: input.GrossWeight},
			breakdown: models.CalculationBreakdown{
				ProductType: input.ProductType,
				GrossWeight: input.GrossWeight,
			},
			labor: decimal.Zero,
		}, nil
	}

	product, err := s.products.GetByModelPurityRow(ctx, input.ModelID, input.Purity, input.Row)
	if err != nil {
		return nil, err
	}
	model, err := s.catalog.GetByID(ctx, input.ModelID)
	if err != nil {
		return nil, err
	}

	r := &resolved{labor: product.LaborMillesimal, modelName: model.Name}
	switch input.ProductType {
	case models.ProductTypeNecklaceBracelet:
		r.params = models.LinearParams{
			CutLengthCm:     input.CutLengthCm,
			WireWeightPerCm: product.WireWeightPerCm,
			TrimLengthCm:    product.TrimLengthCm,
			ExtraWeight:     product.ExtraWeight,
		}
		r.breakdown = models.CalculationBreakdown{
			ProductType:     input.ProductType,
			CutLengthCm:     input.CutLengthCm,
			WireWeightPerCm: product.WireWeightPerCm,
			TrimLengthCm:    product.TrimLengthCm,
			ExtraWeight:     product.ExtraWeight,
		}
	case models.ProductTypeRingEarring:
		r.params = models.RowCountParams{
			Row:             input.Row,
			WireWeightPerCm: product.WireWeightPerCm,
			ExtraWeight:     product.ExtraWeight,
		}
		r.breakdown = models.CalculationBreakdown{
			ProductType:     input.ProductType,
			Row:             input.Row,
			WireWeightPerCm: product.WireWeightPerCm,
			ExtraWeight:     product.ExtraWeight,
		}
	}
	return r, nil
}

// Calculate derives the weight for an input and appends a weight-only entry
// to the history ledger.
func (s *CalculationServiceImpl) Calculate(ctx context.Context, input *models.CalculationInput) (*models.CalculationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, &apperrors.ErrValidation{Field: "calculation", Message: err.Error()}
	}
	res, entry, err := s.calculate(ctx, input)
	if err != nil {
		return nil, err
	}
	s.history.append(entry)
	return res, nil
}

func (s *CalculationServiceImpl) calculate(ctx context.Context, input *models.CalculationInput) (*models.CalculationResult, *models.HistoryEntry, error) {
	r, err := s.resolve(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	weight, formula, err := ComputeWeight(r.params)
	if err != nil {
		return nil, nil, err
	}

	result := &models.CalculationResult{
		WeightGrams:       round2(weight),
		PurityCoefficient: input.Purity.Coefficient(),
		LaborMillesimal:   r.labor,
		Formula:           formula,
		Breakdown:         r.breakdown,
	}
	entry := &models.HistoryEntry{
		ID:                uuid.New().String(),
		ModelID:           input.ModelID,
		ModelName:         r.modelName,
		ProductType:       input.ProductType,
		Purity:            input.Purity,
		WeightGrams:       result.WeightGrams,
		PurityCoefficient: result.PurityCoefficient,
		Formula:           formula,
		Breakdown:         r.breakdown,
		CalculatedAt:      time.Now(),
	}
	return result, entry, nil
}

// CalculateWithPrice derives weight, then prices it with the current gold
// price: total = weight * selling * (coeff + labor/1000), scrap = weight *
// coeff * buying. On success one complete entry lands in the history ledger.
func (s *CalculationServiceImpl) CalculateWithPrice(ctx context.Context, input *models.CalculationInput) (*models.CalculationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, &apperrors.ErrValidation{Field: "calculation", Message: err.Error()}
	}
	result, entry, err := s.calculate(ctx, input)
	if err != nil {
		return nil, err
	}

	price, err := s.goldPrice.GetCurrentPrice(ctx)
	if err != nil {
		return nil, err
	}

	coeff := result.PurityCoefficient
	laborFraction := result.LaborMillesimal.Div(decimal.NewFromInt(1000))
	total := result.WeightGrams.Mul(price.Selling).Mul(coeff.Add(laborFraction))
	scrapPrice := result.WeightGrams.Mul(coeff).Mul(price.Buying)

	result.TotalPrice = round2(total)
	result.ScrapPrice = round2(scrapPrice)
	result.SellPricePerGram = price.Selling
	result.BuyPricePerGram = price.Buying

	entry.TotalPrice = result.TotalPrice
	entry.ScrapPrice = result.ScrapPrice
	entry.SellPricePerGram = price.Selling
	entry.BuyPricePerGram = price.Buying
	s.history.append(entry)

	s.logger.Debug("calculated quote",
		zap.String("model_id", input.ModelID),
		zap.Int("purity", int(input.Purity)),
		zap.String("weight", result.WeightGrams.String()),
		zap.String("total", result.TotalPrice.String()))
	return result, nil
}

// QuickScrap quotes the melt value of an already-weighed item using the
// two-tier scrap table and the buy side of the current price. Labor never
// applies to scrap.
func (s *CalculationServiceImpl) QuickScrap(ctx context.Context, grams decimal.Decimal, purity models.Purity, category models.ScrapCategory) (*models.ScrapQuote, error) {
	if grams.LessThanOrEqual(decimal.Zero) {
		return nil, &apperrors.ErrValidation{Field: "grams", Message: "must be positive"}
	}
	price, err := s.goldPrice.GetCurrentPrice(ctx)
	if err != nil {
		return nil, err
	}
	coeff := models.ScrapCoefficient(purity, category)
	quote := &models.ScrapQuote{
		Grams:           grams,
		Purity:          purity,
		Category:        category,
		Coefficient:     coeff,
		BuyPricePerGram: price.Buying,
		TotalPrice:      round2(grams.Mul(coeff).Mul(price.Buying)),
		CalculatedAt:    time.Now(),
	}
	s.scrap.append(quote)
	return quote, nil
}

// History returns the recent calculations, newest first
func (s *CalculationServiceImpl) History() []*models.HistoryEntry {
	return s.history.list()
}

// ClearHistory empties the calculation ledger
func (s *CalculationServiceImpl) ClearHistory() {
	s.history.clear()
}

// ScrapHistory returns the recent scrap quotes, newest first
func (s *CalculationServiceImpl) ScrapHistory() []*models.ScrapQuote {
	return s.scrap.list()
}

// ClearScrapHistory empties the scrap ledger
func (s *CalculationServiceImpl) ClearScrapHistory() {
	s.scrap.clear()
}
