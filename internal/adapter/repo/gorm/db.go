package gormrepo

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects the game store. The simulation writes one snapshot
// per game per day plus the odd night patch, so the driver's default pool
// settings are left alone.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open game store: %w", err)
	}
	return db, nil
}
