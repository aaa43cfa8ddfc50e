package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elizi/goldtool/internal/db"
	"github.com/elizi/goldtool/internal/models"
)

type goldPriceRepository struct {
	db *db.DB
}

// NewGoldPriceRepository creates a new gold price repository
func NewGoldPriceRepository(database *db.DB) GoldPriceRepository {
	return &goldPriceRepository{db: database}
}

// SetManual replaces any existing override with the given one. There is at
// most one override row at a time.
func (r *goldPriceRepository) SetManual(ctx context.Context, p *models.ManualGoldPrice) error {
	p.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ManualGoldPrice{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous override: %w", err)
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to save manual price: %w", err)
		}
		return nil
	})
}

func (r *goldPriceRepository) GetManual(ctx context.Context) (*models.ManualGoldPrice, error) {
	var p models.ManualGoldPrice
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manual price: %w", err)
	}
	return &p, nil
}

func (r *goldPriceRepository) ClearManual(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.ManualGoldPrice{}).Error; err != nil {
		return fmt.Errorf("failed to clear manual price: %w", err)
	}
	return nil
}

func (r *goldPriceRepository) SaveSnapshot(ctx context.Context, s *models.GoldPriceSnapshot) error {
	s.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("failed to save price snapshot: %w", err)
	}
	return nil
}

func (r *goldPriceRepository) LatestSnapshot(ctx context.Context) (*models.GoldPriceSnapshot, error) {
	var s models.GoldPriceSnapshot
	err := r.db.WithContext(ctx).Order("fetched_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &s, nil
}
