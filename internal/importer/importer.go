package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tableserve/internal/domain"
)

type MenuWriter interface {
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

// CSVImporter reads menu exports and inserts/updates menu items for one
// restaurant. Expected columns: name, category, price_cents, and
// optionally description, image_url, available.
type CSVImporter struct {
	reader       *csv.Reader
	menuRepo     MenuWriter
	restaurantID string
}

func NewCSVImporter(r io.Reader, repo MenuWriter, restaurantID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:       csvr,
		menuRepo:     repo,
		restaurantID: restaurantID,
	}
}

// Run parses CSV rows and upserts menu items, returning how many were
// imported. Rows without a name are skipped; a bad price aborts with
// the row number in the error.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing name column")
	}
	if _, ok := index["price_cents"]; !ok {
		return 0, errors.New("missing price_cents column")
	}

	imported := 0
	row := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", row, err)
		}
		row++

		name := field(record, index, "name")
		if name == "" {
			continue
		}
		cents, err := strconv.ParseInt(field(record, index, "price_cents"), 10, 64)
		if err != nil {
			return imported, fmt.Errorf("row %d: bad price_cents: %w", row, err)
		}

		available := true
		if v := field(record, index, "available"); v != "" {
			available = strings.EqualFold(v, "true") || v == "1"
		}
		category := field(record, index, "category")
		if category == "" {
			category = "uncategorized"
		}

		item := domain.MenuItem{
			RestaurantID: i.restaurantID,
			Name:         name,
			Description:  field(record, index, "description"),
			Category:     category,
			PriceCents:   cents,
			ImageURL:     field(record, index, "image_url"),
			Available:    available,
		}
		if _, err := i.menuRepo.Upsert(ctx, item); err != nil {
			return imported, fmt.Errorf("upsert %s: %w", name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
