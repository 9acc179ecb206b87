package usecase

import (
	"context"
	"errors"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

type GetListingDetailsUseCase struct {
	storage port.ListingStoragePort
}

func NewGetListingDetailsUseCase(storage port.ListingStoragePort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{storage: storage}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID int64) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.storage.GetListingDetails(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Warn("Listing not found", nil)
		} else {
			ucLogger.Error("Storage returned an error", err, nil)
		}
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return listing, nil
}
