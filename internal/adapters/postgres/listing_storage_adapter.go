package postgres

import (
	"context"
	"errors"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `
	l.id, l.title, l.description, l.category, l.subcategory, l.condition,
	COALESCE(l.brand_id, 0), COALESCE(l.model_id, 0), COALESCE(b.name, ''), COALESCE(m.name, ''),
	l.price::float8, COALESCE(l.trade_type, ''), l.for_sale, l.for_trade, l.status, l.owner_id, l.created_at,
	COALESCE((SELECT array_agg(t.name ORDER BY t.name)
		FROM listing_tags lt JOIN tags t ON t.id = lt.tag_id
		WHERE lt.listing_id = l.id), '{}')`

const listingJoins = `
	FROM listings l
	LEFT JOIN brands b ON b.id = l.brand_id
	LEFT JOIN models m ON m.id = l.model_id`

type ListingStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewListingStorageAdapter(pool *pgxpool.Pool) (*ListingStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStorageAdapter{pool: pool}, nil
}

// FindWithFilters runs the count and the page query in one read-only
// snapshot so the total always agrees with the rows.
func (a *ListingStorageAdapter) FindWithFilters(ctx context.Context, filters domain.FilterSet) (*domain.SearchPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ListingStorageAdapter",
		"method":    "FindWithFilters",
		"limit":     filters.Limit,
		"page":      filters.Page,
	})

	whereClause, args := applyFilters(filters)

	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings l %s", whereClause)
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count listings with filters", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count listings with filters: %w", err)
	}

	items := make([]domain.Listing, 0, filters.Limit)
	// an out of range page is answered without a second round-trip
	if total > int64(filters.Offset()) {
		dataQuery := fmt.Sprintf("SELECT %s %s %s %s LIMIT $%d OFFSET $%d",
			listingColumns, listingJoins, whereClause, orderByClause(filters.Sort), len(args)+1, len(args)+2)
		pageArgs := append(args, filters.Limit, filters.Offset())

		rows, err := tx.Query(ctx, dataQuery, pageArgs...)
		if err != nil {
			repoLogger.Error("Failed to find listings with filters", err, port.Fields{"query": dataQuery})
			return nil, fmt.Errorf("failed to find listings with filters: %w", err)
		}
		for rows.Next() {
			listing, err := scanListing(rows)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan listing: %w", err)
			}
			items = append(items, listing)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate listings: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Listings page loaded", port.Fields{"total_count": total, "count": len(items)})
	return &domain.SearchPage{
		Items: items,
		Total: int(total),
		Page:  filters.Page,
		Limit: filters.Limit,
	}, nil
}

func (a *ListingStorageAdapter) CountWithFilters(ctx context.Context, filters domain.FilterSet) (int, error) {
	whereClause, args := applyFilters(filters)
	query := fmt.Sprintf("SELECT COUNT(*) FROM listings l %s", whereClause)

	var total int64
	if err := a.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return int(total), nil
}

func (a *ListingStorageAdapter) GetListingDetails(ctx context.Context, listingID int64) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ListingStorageAdapter",
		"method":     "GetListingDetails",
		"listing_id": listingID,
	})

	query := fmt.Sprintf("SELECT %s %s WHERE l.id = $1 AND l.status = 'active'", listingColumns, listingJoins)
	listing, err := scanListing(a.pool.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		repoLogger.Error("Failed to get listing details", err, nil)
		return nil, fmt.Errorf("failed to get listing %d: %w", listingID, err)
	}
	return &listing, nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	var status string
	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.Category, &l.Subcategory, &l.Condition,
		&l.BrandID, &l.ModelID, &l.BrandName, &l.ModelName,
		&l.Price, &l.TradeType, &l.ForSale, &l.ForTrade, &status, &l.OwnerID, &l.CreatedAt,
		&l.Tags,
	)
	l.Status = domain.ListingStatus(status)
	return l, err
}
