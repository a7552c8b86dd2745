package admin

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

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

const adminColumns = `id::text, restaurant_id::text, email, name, password_hash, created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.AdminUser) (*domain.AdminUser, error) {
	const q = `
INSERT INTO admins (restaurant_id, email, name, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING ` + adminColumns + `
`
	created, err := scanAdmin(r.pool.QueryRow(ctx, q, u.RestaurantID, strings.ToLower(u.Email), u.Name, u.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("admin repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	r.logger.Printf("admin repo: created id=%s restaurant_id=%s", created.ID, created.RestaurantID)
	return created, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const q = `
SELECT ` + adminColumns + `
FROM admins
WHERE email = $1
`
	u, err := scanAdmin(r.pool.QueryRow(ctx, q, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("admin repo: get email=%s error=%v", email, err)
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.AdminUser, error) {
	const q = `
SELECT ` + adminColumns + `
FROM admins
WHERE restaurant_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, q, restaurantID)
	if err != nil {
		r.logger.Printf("admin repo: list restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdminUser
	for rows.Next() {
		u, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

func scanAdmin(row pgx.Row) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := row.Scan(&u.ID, &u.RestaurantID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
