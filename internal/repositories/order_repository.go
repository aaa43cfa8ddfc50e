package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elizi/goldtool/internal/db"
	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

type orderRepository struct {
	db *db.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(database *db.DB) OrderRepository {
	return &orderRepository{db: database}
}

func (r *orderRepository) Create(ctx context.Context, o *models.Order) error {
	if err := o.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "order", Message: err.Error()}
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.ErrNotFound{Entity: "order", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).Order("created_at DESC")
	if filter != nil {
		if filter.CustomerID != "" {
			q = q.Where("customer_id = ?", filter.CustomerID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	var out []*models.Order
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return out, nil
}

func (r *orderRepository) Update(ctx context.Context, o *models.Order) error {
	if err := o.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "order", Message: err.Error()}
	}
	now := time.Now()
	o.UpdatedAt = &now
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":     o.Status,
			"notes":      o.Notes,
			"discount":   o.Discount,
			"subtotal":   o.Subtotal,
			"total":      o.Total,
			"updated_at": o.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "order", Key: o.ID}
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "order", Key: id}
	}
	return nil
}

// GetStatistics aggregates the order book. Cancelled orders count toward the
// total but are excluded from revenue.
func (r *orderRepository) GetStatistics(ctx context.Context) (*models.OrderStatistics, error) {
	stats := &models.OrderStatistics{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		StatusBreakdown:   make(map[models.OrderStatus]int),
	}

	type statusRow struct {
		Status  models.OrderStatus
		Count   int
		Revenue decimal.Decimal
	}
	var rows []statusRow
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total), 0) as revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	revenueOrders := 0
	for _, row := range rows {
		stats.TotalOrders += row.Count
		stats.StatusBreakdown[row.Status] = row.Count
		if row.Status != models.OrderStatusCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(row.Revenue)
			revenueOrders += row.Count
		}
	}
	if revenueOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(revenueOrders))).Round(2)
	}
	return stats, nil
}

func (r *orderRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ?", customerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return int(count), nil
}

// NextOrderNumber produces a sequential human-readable order number
func (r *orderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("ORD-%06d", count+1), nil
}
