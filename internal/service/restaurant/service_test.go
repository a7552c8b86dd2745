package restaurant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableserve/internal/domain"
)

type stubRepo struct {
	restaurant *domain.Restaurant
	table      *domain.Table
	tableErr   error
	lastUpdate domain.Restaurant
}

func (s *stubRepo) Create(_ context.Context, _ domain.Restaurant) (*domain.Restaurant, error) {
	return s.restaurant, nil
}

func (s *stubRepo) GetBySlug(_ context.Context, _ string) (*domain.Restaurant, error) {
	if s.restaurant == nil {
		return nil, domain.ErrNotFound
	}
	return s.restaurant, nil
}

func (s *stubRepo) UpdateProfile(_ context.Context, r domain.Restaurant) (*domain.Restaurant, error) {
	s.lastUpdate = r
	return &r, nil
}

func (s *stubRepo) ListTables(_ context.Context, _ string) ([]domain.Table, error) {
	return nil, nil
}

func (s *stubRepo) GetTable(_ context.Context, _, _ string) (*domain.Table, error) {
	return s.table, s.tableErr
}

func (s *stubRepo) CreateTable(_ context.Context, t domain.Table) (*domain.Table, error) {
	return &t, nil
}

func TestUpdateProfile_RequiresName(t *testing.T) {
	svc := New(&stubRepo{}, "http://host")
	_, err := svc.UpdateProfile(context.Background(), "r1", ProfileInput{})
	require.Error(t, err)
}

func TestUpdateProfile_TrimsFields(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, "http://host")

	updated, err := svc.UpdateProfile(context.Background(), "r1", ProfileInput{
		Name:    "  Chez Ada ",
		Tagline: " fine dining ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chez Ada", updated.Name)
	assert.Equal(t, "fine dining", repo.lastUpdate.Tagline)
}

func TestTableQR_EncodesOrderingURL(t *testing.T) {
	repo := &stubRepo{table: &domain.Table{ID: "t1", Label: "12"}}
	svc := New(repo, "http://host/")

	var encoded string
	svc.encodeQR = func(content string, size int) ([]byte, error) {
		encoded = content
		return []byte("png"), nil
	}

	png, err := svc.TableQR(context.Background(), &domain.Restaurant{ID: "r1", Slug: "chez-ada"}, "t1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
	assert.Equal(t, "http://host/r/chez-ada?table=t1", encoded)
}

func TestTableQR_UnknownTable(t *testing.T) {
	repo := &stubRepo{tableErr: domain.ErrNotFound}
	svc := New(repo, "http://host")

	_, err := svc.TableQR(context.Background(), &domain.Restaurant{ID: "r1", Slug: "chez-ada"}, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
