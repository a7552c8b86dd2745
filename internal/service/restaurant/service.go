package restaurant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"tableserve/internal/domain"
	restaurantrepo "tableserve/internal/repository/restaurant"
)

type Service struct {
	repo          restaurantrepo.Repository
	publicURLHost string
	encodeQR      func(content string, size int) ([]byte, error)
}

func New(repo restaurantrepo.Repository, publicURLHost string) *Service {
	return &Service{
		repo:          repo,
		publicURLHost: strings.TrimRight(publicURLHost, "/"),
		encodeQR: func(content string, size int) ([]byte, error) {
			return qrcode.Encode(content, qrcode.Medium, size)
		},
	}
}

type ProfileInput struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	LogoURL   string `json:"logoUrl"`
	OpenFrom  string `json:"openFrom"`
	OpenUntil string `json:"openUntil"`
}

func (s *Service) Get(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) UpdateProfile(ctx context.Context, restaurantID string, in ProfileInput) (*domain.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	return s.repo.UpdateProfile(ctx, domain.Restaurant{
		ID:        restaurantID,
		Name:      strings.TrimSpace(in.Name),
		Tagline:   strings.TrimSpace(in.Tagline),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		LogoURL:   strings.TrimSpace(in.LogoURL),
		OpenFrom:  strings.TrimSpace(in.OpenFrom),
		OpenUntil: strings.TrimSpace(in.OpenUntil),
	})
}

func (s *Service) ListTables(ctx context.Context, restaurantID string) ([]domain.Table, error) {
	return s.repo.ListTables(ctx, restaurantID)
}

// TableQR renders a PNG QR code pointing a guest at the ordering page
// for one table.
func (s *Service) TableQR(ctx context.Context, restaurant *domain.Restaurant, tableID string) ([]byte, error) {
	table, err := s.repo.GetTable(ctx, restaurant.ID, tableID)
	if err != nil {
		return nil, err
	}
	target := fmt.Sprintf("%s/r/%s?table=%s", s.publicURLHost, restaurant.Slug, url.QueryEscape(table.ID))
	return s.encodeQR(target, 256)
}
