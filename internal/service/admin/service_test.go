package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tableserve/internal/domain"
)

type stubRepo struct {
	created    *domain.AdminUser
	createErr  error
	lastCreate domain.AdminUser
}

func (s *stubRepo) Create(_ context.Context, u domain.AdminUser) (*domain.AdminUser, error) {
	s.lastCreate = u
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, _ string) (*domain.AdminUser, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) ListByRestaurant(_ context.Context, _ string) ([]domain.AdminUser, error) {
	return nil, nil
}

func TestProvision_HashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := &stubRepo{created: &domain.AdminUser{ID: "a1"}}
	svc := New(repo)

	created, err := svc.Provision(context.Background(), ProvisionInput{
		RestaurantID: "r1",
		Email:        "  Staff@Example.COM ",
		Name:         "Staff",
		Password:     "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.Equal(t, "staff@example.com", repo.lastCreate.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.lastCreate.PasswordHash), []byte("hunter2hunter2")))
}

func TestProvision_Validation(t *testing.T) {
	svc := New(&stubRepo{})
	cases := []struct {
		name string
		in   ProvisionInput
	}{
		{"bad email", ProvisionInput{RestaurantID: "r1", Email: "nope", Password: "longenough"}},
		{"missing restaurant", ProvisionInput{Email: "a@b.c", Password: "longenough"}},
		{"short password", ProvisionInput{RestaurantID: "r1", Email: "a@b.c", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Provision(context.Background(), tc.in)
			require.Error(t, err)
		})
	}
}

func TestProvision_DuplicateEmailSurfaces(t *testing.T) {
	repo := &stubRepo{createErr: domain.ErrAlreadyExists}
	svc := New(repo)

	_, err := svc.Provision(context.Background(), ProvisionInput{
		RestaurantID: "r1",
		Email:        "a@b.c",
		Password:     "longenough",
	})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}
