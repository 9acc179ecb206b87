package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type SearchListingsUseCase interface {
	Execute(ctx context.Context, raw domain.RawFilterParams) (*domain.SearchResult, error)
}
