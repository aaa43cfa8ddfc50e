package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/elizi/goldtool/internal/models"
)

// GoldFeedProvider fetches the current spot price from an external feed
type GoldFeedProvider interface {
	FetchSpot(ctx context.Context) (*models.GoldPrice, error)
}

// GoldPriceService owns the single current gold price and its provenance.
// Resolution order: manual override, fresh cache, live fetch, stale cache,
// hard-coded fallback.
type GoldPriceService interface {
	GetCurrentPrice(ctx context.Context) (*models.GoldPrice, error)
	Refresh(ctx context.Context) (*models.GoldPrice, error)
	SetManualPrice(ctx context.Context, buying, selling decimal.Decimal) (*models.GoldPrice, error)
	ClearManualPrice(ctx context.Context) (*models.GoldPrice, error)
	HasManualPrice() bool
	IsCacheValid() bool
	CacheAgeMinutes() int
	Status(ctx context.Context) (*models.GoldPriceStatus, error)
}

// CalculationService turns construction parameters, purity and the current
// gold price into weight and price quotes, and keeps the recall ledgers.
type CalculationService interface {
	Calculate(ctx context.Context, input *models.CalculationInput) (*models.CalculationResult, error)
	CalculateWithPrice(ctx context.Context, input *models.CalculationInput) (*models.CalculationResult, error)
	QuickScrap(ctx context.Context, grams decimal.Decimal, purity models.Purity, category models.ScrapCategory) (*models.ScrapQuote, error)
	History() []*models.HistoryEntry
	ClearHistory()
	ScrapHistory() []*models.ScrapQuote
	ClearScrapHistory()
}

// ModelService manages the catalog model families
type ModelService interface {
	Create(ctx context.Context, m *models.Model) error
	Get(ctx context.Context, id string) (*models.Model, error)
	List(ctx context.Context) ([]*models.Model, error)
	Update(ctx context.Context, m *models.Model) error
	Delete(ctx context.Context, id string) error
}

// ProductService manages construction parameters and resolves them for quotes
type ProductService interface {
	Create(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	ListByModel(ctx context.Context, modelID string) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	Resolve(ctx context.Context, modelID string, purity models.Purity, row int) (*models.Product, error)
}

// CustomerService manages retail customers
type CustomerService interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
}

// CreateOrderInput carries a finalized quote plus caller-selected identifiers
// into the order sink.
type CreateOrderInput struct {
	CustomerID  string                    `json:"customer_id"`
	ModelName   string                    `json:"model_name"`
	ProductType models.ProductType        `json:"product_type"`
	Purity      models.Purity             `json:"purity"`
	Result      *models.CalculationResult `json:"result"`
	Discount    decimal.Decimal           `json:"discount"`
	Notes       *string                   `json:"notes,omitempty"`
}

// OrderService persists finalized quotes and tracks fulfilment
type OrderService interface {
	CreateFromQuote(ctx context.Context, input *CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*models.OrderStatistics, error)
}

// ActivityLogService records and lists API actions
type ActivityLogService interface {
	Record(ctx context.Context, action, entity, entityID, detail string)
	List(ctx context.Context, filter *models.ActivityLogFilter) ([]*models.ActivityLog, error)
}
