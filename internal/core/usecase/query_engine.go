package usecase

import (
	"context"
	"errors"
	"fmt"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"time"
)

// QueryEngine runs canonical filter sets against the listing store. Every
// storage round-trip gets its own timeout.
type QueryEngine struct {
	storage      port.ListingStoragePort
	queryTimeout time.Duration
}

func NewQueryEngine(storage port.ListingStoragePort, queryTimeout time.Duration) (*QueryEngine, error) {
	if storage == nil {
		return nil, errors.New("listing storage cannot be nil")
	}
	if queryTimeout <= 0 {
		return nil, errors.New("query timeout must be positive")
	}
	return &QueryEngine{storage: storage, queryTimeout: queryTimeout}, nil
}

// Run returns the requested page. A page past the end is an empty page, not an error.
func (e *QueryEngine) Run(ctx context.Context, filters domain.FilterSet) (*domain.SearchPage, error) {
	queryCtx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	page, err := e.storage.FindWithFilters(queryCtx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}

	if page.Items == nil {
		page.Items = []domain.Listing{}
	}
	page.Page = filters.Page
	page.Limit = filters.Limit
	page.TotalPages = domain.TotalPages(page.Total, filters.Limit)
	return page, nil
}

// Count is Run on a one-row first page with the items thrown away.
func (e *QueryEngine) Count(ctx context.Context, filters domain.FilterSet) (int, error) {
	probe := filters.Clone()
	probe.Page = 1
	probe.Limit = 1

	queryCtx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	total, err := e.storage.CountWithFilters(queryCtx, probe)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return total, nil
}
