package usecase

import (
	"context"
	"fmt"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// requestCatalog memoizes the dynamic vocabularies for the lifetime of one
// request. It is used from the request goroutine only and never outlives it.
type requestCatalog struct {
	repo port.CatalogRepositoryPort

	brands       []domain.Brand
	brandsLoaded bool
	tags         []domain.Tag
	tagsLoaded   bool
	models       map[int64][]domain.Model
}

func newRequestCatalog(repo port.CatalogRepositoryPort) *requestCatalog {
	return &requestCatalog{
		repo:   repo,
		models: make(map[int64][]domain.Model),
	}
}

func (c *requestCatalog) Brands(ctx context.Context) ([]domain.Brand, error) {
	if c.brandsLoaded {
		return c.brands, nil
	}
	brands, err := c.repo.GetBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}
	c.brands, c.brandsLoaded = brands, true
	return brands, nil
}

func (c *requestCatalog) Tags(ctx context.Context) ([]domain.Tag, error) {
	if c.tagsLoaded {
		return c.tags, nil
	}
	tags, err := c.repo.GetTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	c.tags, c.tagsLoaded = tags, true
	return tags, nil
}

// Models returns nil without touching storage when brandID is 0.
func (c *requestCatalog) Models(ctx context.Context, brandID int64) ([]domain.Model, error) {
	if brandID == 0 {
		return nil, nil
	}
	if models, ok := c.models[brandID]; ok {
		return models, nil
	}
	models, err := c.repo.GetModelsByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to load models for brand %d: %w", brandID, err)
	}
	c.models[brandID] = models
	return models, nil
}
