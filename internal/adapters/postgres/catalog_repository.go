package postgres

import (
	"context"
	"fmt"
	"marketplace-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads the brand, model and tag reference tables, ordered by name.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) (*CatalogRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &CatalogRepository{pool: pool}, nil
}

func (r *CatalogRepository) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brands ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	brands, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Brand, error) {
		var b domain.Brand
		err := row.Scan(&b.ID, &b.Name)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan brands: %w", err)
	}
	return brands, nil
}

func (r *CatalogRepository) GetModelsByBrand(ctx context.Context, brandID int64) ([]domain.Model, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, brand_id, name FROM models WHERE brand_id = $1 ORDER BY name, id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	models := make([]domain.Model, 0)
	for rows.Next() {
		var m domain.Model
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

func (r *CatalogRepository) GetTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Tag])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}
