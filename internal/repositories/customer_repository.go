package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elizi/goldtool/internal/db"
	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

type customerRepository struct {
	db *db.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(database *db.DB) CustomerRepository {
	return &customerRepository{db: database}
}

func (r *customerRepository) Create(ctx context.Context, c *models.Customer) error {
	if err := c.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "customer", Message: err.Error()}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.ErrNotFound{Entity: "customer", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	var out []*models.Customer
	if err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return out, nil
}

func (r *customerRepository) Update(ctx context.Context, c *models.Customer) error {
	if err := c.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "customer", Message: err.Error()}
	}
	now := time.Now()
	c.UpdatedAt = &now
	res := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"first_name":    c.FirstName,
			"last_name":     c.LastName,
			"phone":         c.Phone,
			"email":         c.Email,
			"referral_note": c.ReferralNote,
			"notes":         c.Notes,
			"updated_at":    c.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "customer", Key: c.ID}
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "customer", Key: id}
	}
	return nil
}
