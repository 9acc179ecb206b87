package port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

// ListingStoragePort executes parameterized reads against the listing store.
type ListingStoragePort interface {
	// FindWithFilters returns one page of active listings matching filters plus the total match count.
	FindWithFilters(ctx context.Context, filters domain.FilterSet) (*domain.SearchPage, error)
	// CountWithFilters returns only the total match count.
	CountWithFilters(ctx context.Context, filters domain.FilterSet) (int, error)
	GetListingDetails(ctx context.Context, listingID int64) (*domain.Listing, error)
}
