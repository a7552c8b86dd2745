package order

import (
	"context"
	"time"

	"tableserve/internal/domain"
)

// RevenueBucket is one day of completed-order revenue.
type RevenueBucket struct {
	Day        time.Time `json:"day"`
	OrderCount int       `json:"orderCount"`
	TotalCents int64     `json:"totalCents"`
}

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, restaurantID, id string) (*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID, status string) ([]domain.Order, error)
	SetStatus(ctx context.Context, restaurantID, id, status string) error
	RevenueByDay(ctx context.Context, restaurantID string, from, to time.Time) ([]RevenueBucket, error)
}
