package admin

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tableserve/internal/domain"
	adminrepo "tableserve/internal/repository/admin"
)

type Service struct {
	repo        adminrepo.Repository
	passwordMin int
}

func New(repo adminrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		passwordMin: 8,
	}
}

type ProvisionInput struct {
	RestaurantID string `json:"restaurantId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
}

// Provision creates a staff account for a restaurant. Only the
// super-admin surface calls this; login/token issuance happens outside
// this service.
func (s *Service) Provision(ctx context.Context, in ProvisionInput) (*domain.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("valid email required")
	}
	if strings.TrimSpace(in.RestaurantID) == "" {
		return nil, errors.New("restaurantId required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, errors.New("password too short")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.AdminUser{
		RestaurantID: in.RestaurantID,
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hashed),
	})
}

func (s *Service) List(ctx context.Context, restaurantID string) ([]domain.AdminUser, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}
