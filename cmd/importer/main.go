package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tableserve/internal/config"
	"tableserve/internal/db"
	"tableserve/internal/domain"
	"tableserve/internal/importer"
	menurepo "tableserve/internal/repository/menuitem"
	restaurantrepo "tableserve/internal/repository/restaurant"
)

func main() {
	var (
		filePath string
		slug     string
	)
	flag.StringVar(&filePath, "file", "", "Path to menu CSV export")
	flag.StringVar(&slug, "restaurant", "", "Restaurant slug to import into")
	flag.Parse()

	if filePath == "" || slug == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	restRepo := restaurantrepo.NewPostgres(pool, nil)
	restaurant, err := restRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			restaurant, err = restRepo.Create(ctx, domain.Restaurant{Slug: slug, Name: slug})
		}
		if err != nil {
			log.Fatalf("ensure restaurant %q: %v", slug, err)
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, menurepo.NewPostgres(pool, nil), restaurant.ID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d menu items into %s in %s\n", count, slug, time.Since(start).Truncate(time.Millisecond))
}
