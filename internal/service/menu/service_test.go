package menu

import (
	"context"
	"testing"

	"tableserve/internal/domain"
)

type stubRepo struct {
	lastCreate domain.MenuItem
	lastUpdate domain.MenuItem
	listCat    string
	item       *domain.MenuItem
}

func (s *stubRepo) ListByRestaurant(_ context.Context, _, category string) ([]domain.MenuItem, error) {
	s.listCat = category
	return nil, nil
}

func (s *stubRepo) GetByID(_ context.Context, _, _ string) (*domain.MenuItem, error) {
	if s.item == nil {
		return nil, domain.ErrNotFound
	}
	return s.item, nil
}

func (s *stubRepo) Create(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	s.lastCreate = item
	return &item, nil
}

func (s *stubRepo) Update(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	s.lastUpdate = item
	return &item, nil
}

func (s *stubRepo) SetAvailability(_ context.Context, _, _ string, _ bool) error { return nil }
func (s *stubRepo) Delete(_ context.Context, _, _ string) error                  { return nil }
func (s *stubRepo) Upsert(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	return &item, nil
}

func TestCreate_Validation(t *testing.T) {
	svc := New(&stubRepo{})
	cases := []struct {
		name string
		in   ItemInput
	}{
		{"missing name", ItemInput{Category: "mains", PriceCents: 100}},
		{"missing category", ItemInput{Name: "Burger", PriceCents: 100}},
		{"zero price", ItemInput{Name: "Burger", Category: "mains"}},
		{"negative price", ItemInput{Name: "Burger", Category: "mains", PriceCents: -5}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), "r1", tc.in); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestCreate_DefaultsToAvailable(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	created, err := svc.Create(context.Background(), "r1", ItemInput{
		Name:       " Burger ",
		Category:   "mains",
		PriceCents: 100,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.Available {
		t.Fatalf("expected new items to default to available")
	}
	if repo.lastCreate.Name != "Burger" {
		t.Fatalf("expected trimmed name, got %q", repo.lastCreate.Name)
	}
}

func TestUpdate_KeepsExplicitUnavailable(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	unavailable := false
	_, err := svc.Update(context.Background(), "r1", "m1", ItemInput{
		Name:       "Burger",
		Category:   "mains",
		PriceCents: 100,
		Available:  &unavailable,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.lastUpdate.Available {
		t.Fatalf("expected item to stay unavailable")
	}
	if repo.lastUpdate.ID != "m1" {
		t.Fatalf("expected id m1, got %s", repo.lastUpdate.ID)
	}
}

func TestList_TrimsCategoryFilter(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if _, err := svc.List(context.Background(), "r1", " drinks "); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.listCat != "drinks" {
		t.Fatalf("expected trimmed category, got %q", repo.listCat)
	}
}
