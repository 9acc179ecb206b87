package port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

// CatalogRepositoryPort reads the dynamic part of the vocabularies. All lists are alphabetical.
type CatalogRepositoryPort interface {
	GetBrands(ctx context.Context) ([]domain.Brand, error)
	GetModelsByBrand(ctx context.Context, brandID int64) ([]domain.Model, error)
	GetTags(ctx context.Context) ([]domain.Tag, error)
}
