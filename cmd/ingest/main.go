// Command ingest loads the site CSV into Postgres so the explorer can serve
// the dataset from the database instead of the flat file.
package main

import (
	"log"
	"log/slog"

	"github.com/homefinder/eih-site-explorer/config"
	"github.com/homefinder/eih-site-explorer/dataset"
	"github.com/homefinder/eih-site-explorer/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	sites, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.Fatal("failed to load site dataset:", err)
	}
	slog.Info("loaded site dataset", "path", cfg.Dataset.Path, "count", len(sites))

	db, err := gorm.Open(postgres.Open(cfg.Postgres.ConnStr()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to postgres:", err)
	}

	if err := db.AutoMigrate(&models.Site{}); err != nil {
		log.Fatal("failed to migrate sites table:", err)
	}

	// Re-ingest replaces the table wholesale; the dataset is tiny and has
	// no identity beyond the load.
	if err := db.Exec("TRUNCATE TABLE sites RESTART IDENTITY").Error; err != nil {
		log.Fatal("failed to truncate sites table:", err)
	}

	if err := db.CreateInBatches(&sites, 100).Error; err != nil {
		log.Fatal("failed to insert sites:", err)
	}

	slog.Info("ingest complete", "sites", len(sites))
}
