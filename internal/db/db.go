package db

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gestidoc/internal/models"
)

// Open connects to the configured database. A postgres:// DSN selects the
// postgres driver; anything else is treated as a sqlite file path, the
// default local store. With logQueries every statement is echoed, which is
// only bearable in development.
func Open(dsn string, logQueries bool) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if logQueries {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// Migrate creates or updates the schema for every collection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Invoice{},
		&models.PurchaseOrder{},
		&models.Quote{},
		&models.Appointment{},
		&models.FreeDocument{},
		&models.StockItem{},
	)
}
