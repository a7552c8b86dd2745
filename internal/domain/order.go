package domain

import "time"

// Order statuses. Pending orders move through Preparing and Ready to
// Completed; Cancelled is reachable from any non-terminal status.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID            string      `json:"id"`
	RestaurantID  string      `json:"-"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	TableID       string      `json:"tableId,omitempty"`
	OrderType     string      `json:"orderType"`
	Status        string      `json:"status"`
	TotalCents    int64       `json:"totalCents"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderItem is a snapshot of a menu item at submission time. Later menu
// edits do not touch it.
type OrderItem struct {
	ID             string `json:"id"`
	OrderID        string `json:"-"`
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// ActiveOrder is the customer-facing record of a placed order that is
// still within its display window. It is owned by the expiry tracker
// and never mutated after creation.
type ActiveOrder struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone,omitempty"`
	TableID       string            `json:"tableId,omitempty"`
	Items         []ActiveOrderItem `json:"items"`
	TotalCents    int64             `json:"totalCents"`
	CreatedAt     int64             `json:"createdAt"` // epoch millis
}

type ActiveOrderItem struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// TerminalStatus reports whether an order status admits no further
// transitions.
func TerminalStatus(status string) bool {
	return status == OrderCompleted || status == OrderCancelled
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	if TerminalStatus(from) {
		return false
	}
	switch to {
	case OrderPreparing:
		return from == OrderPending
	case OrderReady:
		return from == OrderPreparing
	case OrderCompleted:
		return from == OrderReady
	case OrderCancelled:
		return true
	default:
		return false
	}
}
