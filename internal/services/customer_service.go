package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

// CustomerServiceImpl implements CustomerService
type CustomerServiceImpl struct {
	repo   repositories.CustomerRepository
	orders repositories.OrderRepository
	logger *zap.Logger
}

// NewCustomerService creates a customer service
func NewCustomerService(repo repositories.CustomerRepository, orders repositories.OrderRepository, logger *zap.Logger) *CustomerServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerServiceImpl{repo: repo, orders: orders, logger: logger}
}

func (s *CustomerServiceImpl) Create(ctx context.Context, c *models.Customer) error {
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.logger.Info("customer created", zap.String("id", c.ID))
	return nil
}

func (s *CustomerServiceImpl) Get(ctx context.Context, id string) (*models.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.orders != nil {
		if n, err := s.orders.CountByCustomer(ctx, id); err == nil {
			c.OrderCount = n
		}
	}
	return c, nil
}

func (s *CustomerServiceImpl) List(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.orders != nil {
		for _, c := range customers {
			if n, err := s.orders.CountByCustomer(ctx, c.ID); err == nil {
				c.OrderCount = n
			}
		}
	}
	return customers, nil
}

func (s *CustomerServiceImpl) Update(ctx context.Context, c *models.Customer) error {
	return s.repo.Update(ctx, c)
}

func (s *CustomerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
