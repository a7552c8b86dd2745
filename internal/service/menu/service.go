package menu

import (
	"context"
	"errors"
	"strings"

	"tableserve/internal/domain"
	menurepo "tableserve/internal/repository/menuitem"
)

type Service struct {
	repo menurepo.Repository
}

func New(repo menurepo.Repository) *Service {
	return &Service{repo: repo}
}

type ItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"priceCents"`
	ImageURL    string `json:"imageUrl"`
	Available   *bool  `json:"available"`
}

func (in ItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return errors.New("category required")
	}
	if in.PriceCents <= 0 {
		return errors.New("price must be positive")
	}
	return nil
}

func (in ItemInput) toItem(restaurantID, id string) domain.MenuItem {
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return domain.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Category:     strings.TrimSpace(in.Category),
		PriceCents:   in.PriceCents,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Available:    available,
	}
}

// List returns the restaurant's menu, optionally filtered by category.
func (s *Service) List(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID, strings.TrimSpace(category))
}

func (s *Service) Get(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error) {
	return s.repo.GetByID(ctx, restaurantID, id)
}

func (s *Service) Create(ctx context.Context, restaurantID string, in ItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in.toItem(restaurantID, ""))
}

func (s *Service) Update(ctx context.Context, restaurantID, id string, in ItemInput) (*domain.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, in.toItem(restaurantID, id))
}

func (s *Service) SetAvailability(ctx context.Context, restaurantID, id string, available bool) error {
	return s.repo.SetAvailability(ctx, restaurantID, id, available)
}

func (s *Service) Delete(ctx context.Context, restaurantID, id string) error {
	return s.repo.Delete(ctx, restaurantID, id)
}
