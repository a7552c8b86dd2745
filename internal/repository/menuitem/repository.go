package menuitem

import (
	"context"

	"tableserve/internal/domain"
)

type Repository interface {
	ListByRestaurant(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, restaurantID, id string, available bool) error
	Delete(ctx context.Context, restaurantID, id string) error
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}
