package events

import (
	"context"
	"time"
)

// Order event types.
const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
	OrderExpired       = "order.expired"
)

// OrderEvent is the payload published on order lifecycle changes.
type OrderEvent struct {
	Type         string    `json:"type"`
	RestaurantID string    `json:"restaurantId"`
	OrderID      string    `json:"orderId"`
	Status       string    `json:"status,omitempty"`
	TotalCents   int64     `json:"totalCents,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher emits order lifecycle events. Publishing is best-effort:
// callers log failures and move on.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent) error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }
