package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

// ---- Mocks for the feed, repositories and services used in unit tests ----

type mockFeed struct {
	mu      sync.Mutex
	price   *models.GoldPrice
	err     error
	calls   int
	blockCh chan struct{}
}

func (m *mockFeed) FetchSpot(ctx context.Context) (*models.GoldPrice, error) {
	m.mu.Lock()
	m.calls++
	block := m.blockCh
	price, err := m.price, m.err
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	p := *price
	return &p, nil
}

func (m *mockFeed) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockFeed) set(price *models.GoldPrice, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.price, m.err = price, err
}

type mockGoldPriceRepo struct {
	mu        sync.Mutex
	manual    *models.ManualGoldPrice
	snapshots []*models.GoldPriceSnapshot
}

func (m *mockGoldPriceRepo) SetManual(ctx context.Context, p *models.ManualGoldPrice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.CreatedAt = time.Now()
	m.manual = &cp
	return nil
}

func (m *mockGoldPriceRepo) GetManual(ctx context.Context) (*models.ManualGoldPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.manual == nil {
		return nil, nil
	}
	cp := *m.manual
	return &cp, nil
}

func (m *mockGoldPriceRepo) ClearManual(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manual = nil
	return nil
}

func (m *mockGoldPriceRepo) SaveSnapshot(ctx context.Context, s *models.GoldPriceSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.snapshots = append(m.snapshots, &cp)
	return nil
}

func (m *mockGoldPriceRepo) LatestSnapshot(ctx context.Context) (*models.GoldPriceSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	cp := *m.snapshots[len(m.snapshots)-1]
	return &cp, nil
}

type mockProductRepo struct {
	products map[string]*models.Product
}

func productKey(modelID string, purity models.Purity, row int) string {
	return fmt.Sprintf("%s/%d/%d", modelID, purity, row)
}

func (m *mockProductRepo) Create(ctx context.Context, p *models.Product) error { return nil }
func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return nil, &apperrors.ErrNotFound{Entity: "product", Key: id}
}
func (m *mockProductRepo) GetByModelPurityRow(ctx context.Context, modelID string, purity models.Purity, row int) (*models.Product, error) {
	if p, ok := m.products[productKey(modelID, purity, row)]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, &apperrors.ErrNotFound{Entity: "product", Key: modelID}
}
func (m *mockProductRepo) ListByModel(ctx context.Context, modelID string) ([]*models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) List(ctx context.Context) ([]*models.Product, error) { return nil, nil }
func (m *mockProductRepo) Update(ctx context.Context, p *models.Product) error { return nil }
func (m *mockProductRepo) Delete(ctx context.Context, id string) error         { return nil }

type mockModelRepo struct {
	models map[string]*models.Model
}

func (m *mockModelRepo) Create(ctx context.Context, mo *models.Model) error { return nil }
func (m *mockModelRepo) GetByID(ctx context.Context, id string) (*models.Model, error) {
	if mo, ok := m.models[id]; ok {
		cp := *mo
		return &cp, nil
	}
	return nil, &apperrors.ErrNotFound{Entity: "model", Key: id}
}
func (m *mockModelRepo) List(ctx context.Context) ([]*models.Model, error) { return nil, nil }
func (m *mockModelRepo) Update(ctx context.Context, mo *models.Model) error {
	return nil
}
func (m *mockModelRepo) Delete(ctx context.Context, id string) error { return nil }

type mockCustomerRepo struct {
	customers map[string]*models.Customer
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *models.Customer) error { return nil }
func (m *mockCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if c, ok := m.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, &apperrors.ErrNotFound{Entity: "customer", Key: id}
}
func (m *mockCustomerRepo) List(ctx context.Context) ([]*models.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) Update(ctx context.Context, c *models.Customer) error { return nil }
func (m *mockCustomerRepo) Delete(ctx context.Context, id string) error          { return nil }

type mockOrderRepo struct {
	mu     sync.Mutex
	orders []*models.Order
}

func (m *mockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if err := o.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "order", Message: err.Error()}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == "" {
		o.ID = fmt.Sprintf("order-%d", len(m.orders)+1)
	}
	cp := *o
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, &apperrors.ErrNotFound{Entity: "order", Key: id}
}

func (m *mockOrderRepo) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) Update(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.orders {
		if existing.ID == o.ID {
			cp := *o
			m.orders[i] = &cp
			return nil
		}
	}
	return &apperrors.ErrNotFound{Entity: "order", Key: o.ID}
}

func (m *mockOrderRepo) Delete(ctx context.Context, id string) error { return nil }
func (m *mockOrderRepo) GetStatistics(ctx context.Context) (*models.OrderStatistics, error) {
	return nil, nil
}
func (m *mockOrderRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}
func (m *mockOrderRepo) NextOrderNumber(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("ORD-%06d", len(m.orders)+1), nil
}

// mockGoldPriceService returns a fixed price for calculation tests
type mockGoldPriceService struct {
	price *models.GoldPrice
	err   error
}

func (m *mockGoldPriceService) GetCurrentPrice(ctx context.Context) (*models.GoldPrice, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := *m.price
	return &p, nil
}
func (m *mockGoldPriceService) Refresh(ctx context.Context) (*models.GoldPrice, error) {
	return m.GetCurrentPrice(ctx)
}
func (m *mockGoldPriceService) SetManualPrice(ctx context.Context, buying, selling decimal.Decimal) (*models.GoldPrice, error) {
	return nil, nil
}
func (m *mockGoldPriceService) ClearManualPrice(ctx context.Context) (*models.GoldPrice, error) {
	return nil, nil
}
func (m *mockGoldPriceService) HasManualPrice() bool { return false }
func (m *mockGoldPriceService) IsCacheValid() bool   { return true }
func (m *mockGoldPriceService) CacheAgeMinutes() int { return 0 }
func (m *mockGoldPriceService) Status(ctx context.Context) (*models.GoldPriceStatus, error) {
	return nil, nil
}
