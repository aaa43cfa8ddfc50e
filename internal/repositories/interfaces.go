package repositories

import (
	"context"

	"github.com/elizi/goldtool/internal/models"
)

// ModelRepository defines catalog model persistence
type ModelRepository interface {
	Create(ctx context.Context, m *models.Model) error
	GetByID(ctx context.Context, id string) (*models.Model, error)
	List(ctx context.Context) ([]*models.Model, error)
	Update(ctx context.Context, m *models.Model) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines construction-parameter persistence.
// GetByModelPurityRow is the catalog-resolver lookup used by every quote.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByModelPurityRow(ctx context.Context, modelID string, purity models.Purity, row int) (*models.Product, error)
	ListByModel(ctx context.Context, modelID string) ([]*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

// CustomerRepository defines customer persistence
type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines order persistence and rollups
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id string) error
	GetStatistics(ctx context.Context) (*models.OrderStatistics, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	NextOrderNumber(ctx context.Context) (string, error)
}

// GoldPriceRepository persists the manual override and fetched snapshots so
// a process restart does not lose the operator-pinned price.
type GoldPriceRepository interface {
	SetManual(ctx context.Context, p *models.ManualGoldPrice) error
	GetManual(ctx context.Context) (*models.ManualGoldPrice, error)
	ClearManual(ctx context.Context) error
	SaveSnapshot(ctx context.Context, s *models.GoldPriceSnapshot) error
	LatestSnapshot(ctx context.Context) (*models.GoldPriceSnapshot, error)
}

// ActivityLogRepository persists the append-only action log
type ActivityLogRepository interface {
	Append(ctx context.Context, l *models.ActivityLog) error
	List(ctx context.Context, filter *models.ActivityLogFilter) ([]*models.ActivityLog, error)
}
