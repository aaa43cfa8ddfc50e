package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

// ActivityLogServiceImpl implements ActivityLogService. Recording is
// fire-and-forget: a log failure never fails the action being logged.
type ActivityLogServiceImpl struct {
	repo   repositories.ActivityLogRepository
	logger *zap.Logger
}

// NewActivityLogService creates an activity log service
func NewActivityLogService(repo repositories.ActivityLogRepository, logger *zap.Logger) *ActivityLogServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityLogServiceImpl{repo: repo, logger: logger}
}

func (s *ActivityLogServiceImpl) Record(ctx context.Context, action, entity, entityID, detail string) {
	err := s.repo.Append(ctx, &models.ActivityLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err))
	}
}

func (s *ActivityLogServiceImpl) List(ctx context.Context, filter *models.ActivityLogFilter) ([]*models.ActivityLog, error) {
	return s.repo.List(ctx, filter)
}
