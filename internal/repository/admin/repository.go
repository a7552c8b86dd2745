package admin

import (
	"context"

	"tableserve/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.AdminUser) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.AdminUser, error)
}
