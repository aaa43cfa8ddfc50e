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

type modelRepository struct {
	db *db.DB
}

// NewModelRepository creates a new model repository
func NewModelRepository(database *db.DB) ModelRepository {
	return &modelRepository{db: database}
}

func (r *modelRepository) Create(ctx context.Context, m *models.Model) error {
	if err := m.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "model", Message: err.Error()}
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

func (r *modelRepository) GetByID(ctx context.Context, id string) (*models.Model, error) {
	var m models.Model
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.ErrNotFound{Entity: "model", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return &m, nil
}

func (r *modelRepository) List(ctx context.Context) ([]*models.Model, error) {
	var out []*models.Model
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return out, nil
}

func (r *modelRepository) Update(ctx context.Context, m *models.Model) error {
	if err := m.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "model", Message: err.Error()}
	}
	now := time.Now()
	m.UpdatedAt = &now
	res := r.db.WithContext(ctx).Model(&models.Model{}).Where("id = ?", m.ID).
		Updates(map[string]interface{}{"name": m.Name, "updated_at": m.UpdatedAt})
	if res.Error != nil {
		return fmt.Errorf("failed to update model: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "model", Key: m.ID}
	}
	return nil
}

func (r *modelRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Model{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete model: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "model", Key: id}
	}
	return nil
}
