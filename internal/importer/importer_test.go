package importer

import (
	"context"
	"strings"
	"testing"

	"tableserve/internal/domain"
)

type stubWriter struct {
	upserted []domain.MenuItem
	err      error
}

func (s *stubWriter) Upsert(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upserted = append(s.upserted, item)
	return &item, nil
}

func TestRun_ImportsRows(t *testing.T) {
	csv := `name,description,category,price_cents,image_url,available
Burger,Beef patty,mains,1000,,true
Fries,,sides,500,,
,skipped row,,100,,
Lemonade,Fresh,drinks,300,,false
`
	repo := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), repo, "r1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 imported, got %d", count)
	}
	if repo.upserted[0].Name != "Burger" || repo.upserted[0].PriceCents != 1000 {
		t.Fatalf("unexpected first item %+v", repo.upserted[0])
	}
	if !repo.upserted[1].Available {
		t.Fatalf("missing available column must default to true")
	}
	if repo.upserted[2].Available {
		t.Fatalf("explicit false must stick")
	}
	if repo.upserted[0].RestaurantID != "r1" {
		t.Fatalf("expected restaurant id on item, got %q", repo.upserted[0].RestaurantID)
	}
}

func TestRun_BadPriceAborts(t *testing.T) {
	csv := `name,category,price_cents
Burger,mains,not-a-number
`
	imp := NewCSVImporter(strings.NewReader(csv), &stubWriter{}, "r1")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for bad price")
	}
}

func TestRun_MissingColumns(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("description\nfoo\n"), &stubWriter{}, "r1")
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}
