package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type menuSeed struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	restaurantID, err := ensureRestaurant(ctx, pool, "demo-diner", "Demo Diner")
	if err != nil {
		return fmt.Errorf("ensure restaurant: %w", err)
	}

	items := []menuSeed{
		{
			Name:        "Classic Burger",
			Description: "Beef patty, cheddar, pickles",
			Category:    "mains",
			PriceCents:  1150,
		},
		{
			Name:        "Fries",
			Description: "Hand cut, double fried",
			Category:    "sides",
			PriceCents:  450,
		},
		{
			Name:        "Lemonade",
			Description: "Fresh squeezed",
			Category:    "drinks",
			PriceCents:  350,
		},
	}

	for _, item := range items {
		if err := upsertMenuItem(ctx, pool, restaurantID, item); err != nil {
			return fmt.Errorf("upsert menu item %s: %w", item.Name, err)
		}
	}

	for _, label := range []string{"1", "2", "3", "4"} {
		if err := ensureTable(ctx, pool, restaurantID, label); err != nil {
			return fmt.Errorf("ensure table %s: %w", label, err)
		}
	}

	return nil
}

func ensureRestaurant(ctx context.Context, pool *pgxpool.Pool, slug, name string) (string, error) {
	const q = `
INSERT INTO restaurants (slug, name)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, slug, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertMenuItem(ctx context.Context, pool *pgxpool.Pool, restaurantID string, item menuSeed) error {
	const q = `
INSERT INTO menu_items (restaurant_id, name, description, category, price_cents, available)
VALUES ($1, $2, $3, $4, $5, TRUE)
ON CONFLICT (restaurant_id, name) DO UPDATE
SET description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, restaurantID, item.Name, item.Description, item.Category, item.PriceCents)
	return err
}

func ensureTable(ctx context.Context, pool *pgxpool.Pool, restaurantID, label string) error {
	const q = `
INSERT INTO tables (restaurant_id, label, seats)
VALUES ($1, $2, 4)
ON CONFLICT (restaurant_id, label) DO NOTHING
`
	_, err := pool.Exec(ctx, q, restaurantID, label)
	return err
}
