package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type GetListingDetailsUseCase interface {
	Execute(ctx context.Context, listingID int64) (*domain.Listing, error)
}
