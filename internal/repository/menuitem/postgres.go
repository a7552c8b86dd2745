package menuitem

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const menuItemColumns = `id::text, restaurant_id::text, name, COALESCE(description, ''), category, price_cents, COALESCE(image_url, ''), available, created_at`

func (r *postgresRepo) ListByRestaurant(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error) {
	q := `
SELECT ` + menuItemColumns + `
FROM menu_items
WHERE restaurant_id = $1
`
	args := []interface{}{restaurantID}
	if category != "" {
		q += ` AND category = $2`
		args = append(args, category)
	}
	q += ` ORDER BY category, name`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("menu repo: list restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("menu repo: list rows restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error) {
	const q = `
SELECT ` + menuItemColumns + `
FROM menu_items
WHERE restaurant_id = $1 AND id = $2
`
	item, err := scanMenuItem(r.pool.QueryRow(ctx, q, restaurantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("menu repo: get restaurant_id=%s id=%s error=%v", restaurantID, id, err)
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (restaurant_id, name, description, category, price_cents, image_url, available)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7)
RETURNING ` + menuItemColumns + `
`
	created, err := scanMenuItem(r.pool.QueryRow(ctx, q,
		item.RestaurantID, item.Name, item.Description, item.Category, item.PriceCents, item.ImageURL, item.Available))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("menu repo: create restaurant_id=%s name=%s error=%v", item.RestaurantID, item.Name, err)
		return nil, err
	}
	r.logger.Printf("menu repo: created restaurant_id=%s id=%s name=%s", created.RestaurantID, created.ID, created.Name)
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
UPDATE menu_items
SET name = $3,
    description = NULLIF($4, ''),
    category = $5,
    price_cents = $6,
    image_url = NULLIF($7, ''),
    available = $8
WHERE restaurant_id = $1 AND id = $2
RETURNING ` + menuItemColumns + `
`
	updated, err := scanMenuItem(r.pool.QueryRow(ctx, q,
		item.RestaurantID, item.ID, item.Name, item.Description, item.Category, item.PriceCents, item.ImageURL, item.Available))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("menu repo: update restaurant_id=%s id=%s error=%v", item.RestaurantID, item.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) SetAvailability(ctx context.Context, restaurantID, id string, available bool) error {
	const q = `
UPDATE menu_items
SET available = $3
WHERE restaurant_id = $1 AND id = $2
`
	tag, err := r.pool.Exec(ctx, q, restaurantID, id, available)
	if err != nil {
		r.logger.Printf("menu repo: set availability restaurant_id=%s id=%s error=%v", restaurantID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, restaurantID, id string) error {
	const q = `DELETE FROM menu_items WHERE restaurant_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, q, restaurantID, id)
	if err != nil {
		r.logger.Printf("menu repo: delete restaurant_id=%s id=%s error=%v", restaurantID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (restaurant_id, name, description, category, price_cents, image_url, available)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7)
ON CONFLICT (restaurant_id, name) DO UPDATE SET
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url,
    available = EXCLUDED.available
RETURNING ` + menuItemColumns + `
`
	upserted, err := scanMenuItem(r.pool.QueryRow(ctx, q,
		item.RestaurantID, item.Name, item.Description, item.Category, item.PriceCents, item.ImageURL, item.Available))
	if err != nil {
		r.logger.Printf("menu repo: upsert restaurant_id=%s name=%s error=%v", item.RestaurantID, item.Name, err)
		return nil, err
	}
	return upserted, nil
}

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.PriceCents,
		&item.ImageURL,
		&item.Available,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
