package restaurant

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

const restaurantColumns = `id::text, slug, name, COALESCE(tagline, ''), COALESCE(phone, ''), COALESCE(address, ''), COALESCE(logo_url, ''), COALESCE(open_from, ''), COALESCE(open_until, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.Restaurant) (*domain.Restaurant, error) {
	const q = `
INSERT INTO restaurants (slug, name, tagline, phone, address, logo_url, open_from, open_until)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
RETURNING ` + restaurantColumns + `
`
	created, err := scanRestaurant(r.pool.QueryRow(ctx, q,
		in.Slug, in.Name, in.Tagline, in.Phone, in.Address, in.LogoURL, in.OpenFrom, in.OpenUntil))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("restaurant repo: create slug=%s error=%v", in.Slug, err)
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	const q = `
SELECT ` + restaurantColumns + `
FROM restaurants
WHERE slug = $1
`
	res, err := scanRestaurant(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("restaurant repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, in domain.Restaurant) (*domain.Restaurant, error) {
	const q = `
UPDATE restaurants
SET name = $2,
    tagline = NULLIF($3, ''),
    phone = NULLIF($4, ''),
    address = NULLIF($5, ''),
    logo_url = NULLIF($6, ''),
    open_from = NULLIF($7, ''),
    open_until = NULLIF($8, '')
WHERE id = $1
RETURNING ` + restaurantColumns + `
`
	updated, err := scanRestaurant(r.pool.QueryRow(ctx, q,
		in.ID, in.Name, in.Tagline, in.Phone, in.Address, in.LogoURL, in.OpenFrom, in.OpenUntil))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("restaurant repo: update id=%s error=%v", in.ID, err)
		return nil, err
	}
	r.logger.Printf("restaurant repo: updated profile id=%s", updated.ID)
	return updated, nil
}

func (r *postgresRepo) ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error) {
	const q = `
SELECT id::text, restaurant_id::text, label, seats, created_at
FROM tables
WHERE restaurant_id = $1
ORDER BY label
`
	rows, err := r.pool.Query(ctx, q, restaurantID)
	if err != nil {
		r.logger.Printf("restaurant repo: list tables restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Label, &t.Seats, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetTable(ctx context.Context, restaurantID, tableID string) (*domain.Table, error) {
	const q = `
SELECT id::text, restaurant_id::text, label, seats, created_at
FROM tables
WHERE restaurant_id = $1 AND id = $2
`
	var t domain.Table
	err := r.pool.QueryRow(ctx, q, restaurantID, tableID).Scan(&t.ID, &t.RestaurantID, &t.Label, &t.Seats, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("restaurant repo: get table restaurant_id=%s id=%s error=%v", restaurantID, tableID, err)
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) CreateTable(ctx context.Context, in domain.Table) (*domain.Table, error) {
	const q = `
INSERT INTO tables (restaurant_id, label, seats)
VALUES ($1, $2, $3)
ON CONFLICT (restaurant_id, label) DO UPDATE SET seats = EXCLUDED.seats
RETURNING id::text, restaurant_id::text, label, seats, created_at
`
	var t domain.Table
	err := r.pool.QueryRow(ctx, q, in.RestaurantID, in.Label, in.Seats).Scan(&t.ID, &t.RestaurantID, &t.Label, &t.Seats, &t.CreatedAt)
	if err != nil {
		r.logger.Printf("restaurant repo: create table restaurant_id=%s label=%s error=%v", in.RestaurantID, in.Label, err)
		return nil, err
	}
	return &t, nil
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var res domain.Restaurant
	err := row.Scan(
		&res.ID,
		&res.Slug,
		&res.Name,
		&res.Tagline,
		&res.Phone,
		&res.Address,
		&res.LogoURL,
		&res.OpenFrom,
		&res.OpenUntil,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
