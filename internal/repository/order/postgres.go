package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tableserve/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, restaurant_id::text, customer_name, COALESCE(customer_phone, ''), COALESCE(table_id::text, ''), order_type, status, total_cents, created_at`

// Create inserts the order and its item snapshots in one transaction.
func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (restaurant_id, customer_name, customer_phone, table_id, order_type, status, total_cents)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, '')::uuid, $5, $6, $7)
RETURNING ` + orderColumns + `
`
	created, err := scanOrder(tx.QueryRow(ctx, insertOrder,
		o.RestaurantID, o.CustomerName, o.CustomerPhone, o.TableID, o.OrderType, domain.OrderPending, o.TotalCents))
	if err != nil {
		r.logger.Printf("order repo: create restaurant_id=%s error=%v", o.RestaurantID, err)
		return nil, err
	}

	const insertItem = `
INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	for _, item := range o.Items {
		var itemID string
		if err := tx.QueryRow(ctx, insertItem, created.ID, item.MenuItemID, item.Name, item.Quantity, item.UnitPriceCents).Scan(&itemID); err != nil {
			r.logger.Printf("order repo: create item order_id=%s menu_item_id=%s error=%v", created.ID, item.MenuItemID, err)
			return nil, err
		}
		created.Items = append(created.Items, domain.OrderItem{
			ID:             itemID,
			OrderID:        created.ID,
			MenuItemID:     item.MenuItemID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created restaurant_id=%s id=%s items=%d total_cents=%d",
		created.RestaurantID, created.ID, len(created.Items), created.TotalCents)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, restaurantID, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE restaurant_id = $1 AND id = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, restaurantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get restaurant_id=%s id=%s error=%v", restaurantID, id, err)
		return nil, err
	}
	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByRestaurant(ctx context.Context, restaurantID, status string) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE restaurant_id = $1
`
	args := []interface{}{restaurantID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].Items, err = r.loadItems(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, restaurantID, id, status string) error {
	const q = `
UPDATE orders
SET status = $3
WHERE restaurant_id = $1 AND id = $2
`
	tag, err := r.pool.Exec(ctx, q, restaurantID, id, status)
	if err != nil {
		r.logger.Printf("order repo: set status restaurant_id=%s id=%s status=%s error=%v", restaurantID, id, status, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status restaurant_id=%s id=%s -> %s", restaurantID, id, status)
	return nil
}

// RevenueByDay buckets completed orders by calendar day over [from, to).
func (r *postgresRepo) RevenueByDay(ctx context.Context, restaurantID string, from, to time.Time) ([]RevenueBucket, error) {
	const q = `
SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(total_cents), 0)
FROM orders
WHERE restaurant_id = $1
  AND status = $2
  AND created_at >= $3
  AND created_at < $4
GROUP BY day
ORDER BY day
`
	rows, err := r.pool.Query(ctx, q, restaurantID, domain.OrderCompleted, from, to)
	if err != nil {
		r.logger.Printf("order repo: revenue restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []RevenueBucket
	for rows.Next() {
		var b RevenueBucket
		if err := rows.Scan(&b.Day, &b.OrderCount, &b.TotalCents); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, menu_item_id::text, name, quantity, unit_price_cents
FROM order_items
WHERE order_id = $1
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.RestaurantID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.TableID,
		&o.OrderType,
		&o.Status,
		&o.TotalCents,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
