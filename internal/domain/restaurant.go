package domain

import "time"

type Restaurant struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	OpenFrom  string    `json:"openFrom,omitempty"`
	OpenUntil string    `json:"openUntil,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Table struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"-"`
	Label        string    `json:"label"`
	Seats        int       `json:"seats"`
	CreatedAt    time.Time `json:"createdAt"`
}
