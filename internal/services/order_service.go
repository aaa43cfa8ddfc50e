package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

// OrderServiceImpl implements OrderService, the order sink for finalized
// quotes. The pricing core never writes orders itself; this service does.
type OrderServiceImpl struct {
	repo      repositories.OrderRepository
	customers repositories.CustomerRepository
	logger    *zap.Logger
}

// NewOrderService creates an order service
func NewOrderService(repo repositories.OrderRepository, customers repositories.CustomerRepository, logger *zap.Logger) *OrderServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderServiceImpl{repo: repo, customers: customers, logger: logger}
}

// CreateFromQuote persists a finalized calculation as a pending order
func (s *OrderServiceImpl) CreateFromQuote(ctx context.Context, input *CreateOrderInput) (*models.Order, error) {
	if input.Result == nil {
		return nil, &apperrors.ErrValidation{Field: "result", Message: "a finalized calculation is required"}
	}
	if input.Discount.IsNegative() {
		return nil, &apperrors.ErrValidation{Field: "discount", Message: "must be non-negative"}
	}

	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	number, err := s.repo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := input.Result.TotalPrice
	total := subtotal.Sub(input.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := &models.Order{
		OrderNumber: number,
		CustomerID:  customer.ID,
		ProductType: input.ProductType,
		ModelName:   input.ModelName,
		Purity:      input.Purity,
		Formula:     input.Result.Formula,
		TotalWeight: input.Result.WeightGrams,
		GoldPrice:   input.Result.SellPricePerGram,
		Subtotal:    subtotal,
		Discount:    input.Discount,
		Total:       total,
		Notes:       input.Notes,
		Status:      models.OrderStatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	order.CustomerName = customer.FirstName + " " + customer.LastName

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_id", order.CustomerID),
		zap.String("total", order.Total.String()))
	return order, nil
}

func (s *OrderServiceImpl) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c, err := s.customers.GetByID(ctx, order.CustomerID); err == nil {
		order.CustomerName = c.FirstName + " " + c.LastName
	}
	return order, nil
}

func (s *OrderServiceImpl) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, &apperrors.ErrValidation{Field: "status", Message: "unknown order status"}
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("order status updated",
		zap.String("id", id), zap.String("status", string(status)))
	return order, nil
}

func (s *OrderServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *OrderServiceImpl) Statistics(ctx context.Context) (*models.OrderStatistics, error) {
	return s.repo.GetStatistics(ctx)
}
