package domain

import "time"

type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"-"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	PriceCents   int64     `json:"priceCents"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
}
