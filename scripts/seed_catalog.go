package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"github.com/elizi/goldtool/internal/db"
	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

// Seeds the catalog with a starter set of chain models and their construction
// parameters so a fresh install can quote immediately.
//
// Usage: go run scripts/seed_catalog.go [-sqlite path]
func main() {
	sqlitePath := flag.String("sqlite", "", "seed a sqlite database at this path instead of postgres")
	flag.Parse()

	var database *db.DB
	var err error
	if *sqlitePath != "" || os.Getenv("DB_DRIVER") == "sqlite" {
		path := *sqlitePath
		if path == "" {
			path = "goldtool.db"
		}
		database, err = db.ConnectSQLite(path)
	} else {
		database, err = db.Connect(db.NewConfig())
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	modelRepo := repositories.NewModelRepository(database)
	productRepo := repositories.NewProductRepository(database)
	ctx := context.Background()

	type entry struct {
		purity models.Purity
		row    int
		wire   string
		trim   string
		extra  string
		labor  string
	}
	catalog := map[string][]entry{
		"Singapur": {
			{14, 2, "0.50", "2.0", "1.50", "100"},
			{22, 2, "0.55", "2.0", "1.60", "80"},
		},
		"Burma": {
			{14, 2, "0.30", "0", "1.00", "110"},
			{14, 3, "0.45", "0", "1.20", "110"},
		},
		"Halat": {
			{22, 2, "0.80", "1.5", "2.00", "90"},
		},
	}

	seeded := 0
	for name, entries := range catalog {
		m := &models.Model{Name: name}
		if err := modelRepo.Create(ctx, m); err != nil {
			log.Printf("Skipping model %s: %v", name, err)
			continue
		}
		for _, e := range entries {
			p := &models.Product{
				ModelID:         m.ID,
				Purity:          e.purity,
				Row:             e.row,
				WireWeightPerCm: decimal.RequireFromString(e.wire),
				TrimLengthCm:    decimal.RequireFromString(e.trim),
				ExtraWeight:     decimal.RequireFromString(e.extra),
				LaborMillesimal: decimal.RequireFromString(e.labor),
			}
			if err := productRepo.Create(ctx, p); err != nil {
				log.Printf("Skipping product %s/%dk/row %d: %v", name, e.purity, e.row, err)
				continue
			}
			seeded++
		}
	}

	fmt.Printf("Seeded %d catalog entries\n", seeded)
}
