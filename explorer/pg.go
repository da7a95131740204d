package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/homefinder/eih-site-explorer/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SitePg struct {
	db *gorm.DB
}

func NewSitePg(connStr string) (*SitePg, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	return &SitePg{db: db}, nil
}

// ListSites returns every ingested site in insertion order. The result is
// the process-wide dataset; it is loaded once at startup.
func (s *SitePg) ListSites(ctx context.Context) ([]models.Site, error) {
	var sites []models.Site
	if err := s.db.WithContext(ctx).Order("id").Find(&sites).Error; err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	return sites, nil
}
