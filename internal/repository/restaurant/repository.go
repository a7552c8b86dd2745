package restaurant

import (
	"context"

	"tableserve/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	UpdateProfile(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error)
	GetTable(ctx context.Context, restaurantID, tableID string) (*domain.Table, error)
	CreateTable(ctx context.Context, t domain.Table) (*domain.Table, error)
}
