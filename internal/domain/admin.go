package domain

import "time"

type AdminUser struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
