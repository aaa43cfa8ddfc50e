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

type productRepository struct {
	db *db.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(database *db.DB) ProductRepository {
	return &productRepository{db: database}
}

func (r *productRepository) Create(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "product", Message: err.Error()}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.ErrNotFound{Entity: "product", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// GetByModelPurityRow resolves the construction parameters for a quote.
// Every calculation re-resolves; nothing is cached here.
func (r *productRepository) GetByModelPurityRow(ctx context.Context, modelID string, purity models.Purity, row int) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where(`model_id = ? AND purity = ? AND "row" = ?`, modelID, purity, row).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperrors.ErrNotFound{
			Entity: "product",
			Key:    fmt.Sprintf("%s/%d/%d", modelID, purity, row),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) ListByModel(ctx context.Context, modelID string) ([]*models.Product, error) {
	var out []*models.Product
	err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order(`purity, "row"`).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return out, nil
}

func (r *productRepository) List(ctx context.Context) ([]*models.Product, error) {
	var out []*models.Product
	if err := r.db.WithContext(ctx).Order(`model_id, purity, "row"`).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return out, nil
}

func (r *productRepository) Update(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "product", Message: err.Error()}
	}
	now := time.Now()
	p.UpdatedAt = &now
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"model_id":           p.ModelID,
			"purity":             p.Purity,
			"row":                p.Row,
			"wire_weight_per_cm": p.WireWeightPerCm,
			"trim_length_cm":     p.TrimLengthCm,
			"extra_weight":       p.ExtraWeight,
			"labor_millesimal":   p.LaborMillesimal,
			"updated_at":         p.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "product", Key: p.ID}
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "product", Key: id}
	}
	return nil
}
