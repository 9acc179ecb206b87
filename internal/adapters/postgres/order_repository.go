package postgres

import (
	"context"
	"errors"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `
	o.id, o.listing_id, COALESCE(l.title, ''), o.buyer_id, o.seller_id, o.status,
	o.total_amount::float8, COALESCE(o.tracking_number, ''), o.created_at, o.updated_at`

const orderJoins = `
	FROM orders o
	LEFT JOIN listings l ON l.id = o.listing_id`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) (*OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &OrderRepository{pool: pool}, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.OrderPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "OrderRepository",
		"method":    "ListOrders",
	})

	whereClause := ""
	args := make([]interface{}, 0, 3)
	if filter.Status != "" {
		whereClause = "WHERE o.status = $1"
		args = append(args, string(filter.Status))
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders o %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count orders", err, nil)
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d",
		orderColumns, orderJoins, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list orders", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, filter.Limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return &domain.OrderPage{Orders: orders, Total: int(total)}, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return getOrder(ctx, r.pool, orderID)
}

// UpdateStatus moves the order and its listing in one transaction. The order
// row is only touched while it still holds change.From.
func (r *OrderRepository) UpdateStatus(ctx context.Context, change domain.OrderStatusChange) (*domain.Order, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "OrderRepository",
		"method":    "UpdateStatus",
		"order_id":  change.OrderID,
	})

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var listingID int64
	err = tx.QueryRow(ctx, `
		UPDATE orders SET status = $1, tracking_number = NULLIF($2, ''), updated_at = $3
		WHERE id = $4 AND status = $5
		RETURNING listing_id`,
		string(change.To), change.TrackingNumber, change.ChangedAt, change.OrderID, string(change.From),
	).Scan(&listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderConflict
		}
		return nil, r.wrapTxError(repoLogger, "failed to update order status", err)
	}

	switch change.To {
	case domain.OrderPaid:
		_, err = tx.Exec(ctx, `UPDATE listings SET status = 'sold' WHERE id = $1 AND status = 'active'`, listingID)
	case domain.OrderCancelled:
		_, err = tx.Exec(ctx, `UPDATE listings SET status = 'active' WHERE id = $1 AND status = 'sold'`, listingID)
	}
	if err != nil {
		return nil, r.wrapTxError(repoLogger, "failed to update listing status", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		change.OrderID, string(change.From), string(change.To), change.ChangedBy, change.ChangedAt)
	if err != nil {
		return nil, r.wrapTxError(repoLogger, "failed to record status history", err)
	}

	order, err := getOrder(ctx, tx, change.OrderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, r.wrapTxError(repoLogger, "failed to commit transaction", err)
	}

	repoLogger.Info("Order status updated", port.Fields{"from": string(change.From), "to": string(change.To)})
	return order, nil
}

// wrapTxError reports serialization failures as a conflict the caller may retry.
func (r *OrderRepository) wrapTxError(logger port.LoggerPort, msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" { // serialization_failure
		logger.Warn("Concurrent order update detected", nil)
		return domain.ErrOrderConflict
	}
	logger.Error(msg, err, nil)
	return fmt.Errorf("%s: %w", msg, err)
}

func getOrder(ctx context.Context, q querier, orderID int64) (*domain.Order, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE o.id = $1", orderColumns, orderJoins)
	order, err := scanOrder(q.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return &order, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(
		&o.ID, &o.ListingID, &o.ListingTitle, &o.BuyerID, &o.SellerID, &status,
		&o.TotalAmount, &o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt,
	)
	o.Status = domain.OrderStatus(status)
	return o, err
}
