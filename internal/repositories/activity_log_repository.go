package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/elizi/goldtool/internal/db"
	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

type activityLogRepository struct {
	db *db.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(database *db.DB) ActivityLogRepository {
	return &activityLogRepository{db: database}
}

func (r *activityLogRepository) Append(ctx context.Context, l *models.ActivityLog) error {
	if err := l.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "activity_log", Message: err.Error()}
	}
	l.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

func (r *activityLogRepository) List(ctx context.Context, filter *models.ActivityLogFilter) ([]*models.ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Order("created_at DESC")
	if filter != nil {
		if filter.Entity != "" {
			q = q.Where("entity = ?", filter.Entity)
		}
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		} else {
			q = q.Limit(100)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	} else {
		q = q.Limit(100)
	}
	var out []*models.ActivityLog
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return out, nil
}
