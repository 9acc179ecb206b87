package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type GetCatalogUseCase interface {
	Execute(ctx context.Context, rawContext string) (*domain.CatalogView, error)
}

type GetBrandModelsUseCase interface {
	Execute(ctx context.Context, brandID int64) ([]domain.Model, error)
}
