package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

// ModelServiceImpl implements ModelService over the model repository
type ModelServiceImpl struct {
	repo   repositories.ModelRepository
	logger *zap.Logger
}

// NewModelService creates a model service
func NewModelService(repo repositories.ModelRepository, logger *zap.Logger) *ModelServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelServiceImpl{repo: repo, logger: logger}
}

func (s *ModelServiceImpl) Create(ctx context.Context, m *models.Model) error {
	if err := s.repo.Create(ctx, m); err != nil {
		return err
	}
	s.logger.Info("model created", zap.String("id", m.ID), zap.String("name", m.Name))
	return nil
}

func (s *ModelServiceImpl) Get(ctx context.Context, id string) (*models.Model, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ModelServiceImpl) List(ctx context.Context) ([]*models.Model, error) {
	return s.repo.List(ctx)
}

func (s *ModelServiceImpl) Update(ctx context.Context, m *models.Model) error {
	return s.repo.Update(ctx, m)
}

func (s *ModelServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ProductServiceImpl implements ProductService. Resolve is the catalog
// lookup capability consumed by the calculation service.
type ProductServiceImpl struct {
	repo   repositories.ProductRepository
	models repositories.ModelRepository
	logger *zap.Logger
}

// NewProductService creates a product service
func NewProductService(repo repositories.ProductRepository, modelRepo repositories.ModelRepository, logger *zap.Logger) *ProductServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductServiceImpl{repo: repo, models: modelRepo, logger: logger}
}

func (s *ProductServiceImpl) Create(ctx context.Context, p *models.Product) error {
	// The model must exist before parameters can hang off it
	if _, err := s.models.GetByID(ctx, p.ModelID); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.logger.Info("product created",
		zap.String("id", p.ID),
		zap.String("model_id", p.ModelID),
		zap.Int("purity", int(p.Purity)),
		zap.Int("row", p.Row))
	return nil
}

func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachModelName(ctx, p)
	return p, nil
}

func (s *ProductServiceImpl) List(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		s.attachModelName(ctx, p)
	}
	return products, nil
}

func (s *ProductServiceImpl) ListByModel(ctx context.Context, modelID string) ([]*models.Product, error) {
	return s.repo.ListByModel(ctx, modelID)
}

func (s *ProductServiceImpl) Update(ctx context.Context, p *models.Product) error {
	return s.repo.Update(ctx, p)
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductServiceImpl) Resolve(ctx context.Context, modelID string, purity models.Purity, row int) (*models.Product, error) {
	return s.repo.GetByModelPurityRow(ctx, modelID, purity, row)
}

func (s *ProductServiceImpl) attachModelName(ctx context.Context, p *models.Product) {
	if m, err := s.models.GetByID(ctx, p.ModelID); err == nil {
		p.ModelName = m.Name
	}
}
