package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mkramos/gamestore-backend/config"
	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/internal/db"
	"github.com/mkramos/gamestore-backend/pkg/slug"
	"github.com/xuri/excelize/v2"
)

// Imports games from an xlsx sheet with columns:
// name | slug | price | release_date (YYYY-MM-DD)
// Rows whose name already exists in the store are skipped.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	gameRepo := repository.NewGameRepository(db.GetDB())

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open xlsx file:", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		log.Fatal("Failed to read sheet:", err)
	}

	created, skipped := 0, 0
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			// header or blank row
			continue
		}

		name := row[0]
		existing, err := gameRepo.FindByName(name)
		if err != nil {
			log.Fatalf("Row %d: lookup failed: %v", i+1, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		game := &model.Game{
			Name:        name,
			Slug:        slug.Make(name),
			PublishedAt: time.Now(),
		}
		if len(row) > 1 && row[1] != "" {
			game.Slug = row[1]
		}
		if len(row) > 2 && row[2] != "" {
			if price, err := strconv.ParseFloat(row[2], 64); err == nil {
				game.Price = price
			} else {
				log.Printf("Row %d: unparseable price %q, leaving zero", i+1, row[2])
			}
		}
		if len(row) > 3 && row[3] != "" {
			if released, err := time.Parse("2006-01-02", row[3]); err == nil {
				game.ReleaseDate = released
			} else {
				log.Printf("Row %d: unparseable release date %q, leaving zero", i+1, row[3])
			}
		}

		if err := gameRepo.Create(game); err != nil {
			log.Fatalf("Row %d: create failed: %v", i+1, err)
		}
		created++
	}

	log.Printf("Seed finished: %d created, %d skipped", created, skipped)
}
