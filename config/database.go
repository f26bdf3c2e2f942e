package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kendall-kelly/stock-api/logger"
	"github.com/kendall-kelly/stock-api/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteScheme = "sqlite://"

// Dialector picks the gorm driver for a database URL. postgres:// and
// postgresql:// go to PostgreSQL; sqlite://<path> and file: URLs go to SQLite
// with foreign keys switched on so cascades are enforced by the store.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), nil
	case strings.HasPrefix(databaseURL, sqliteScheme):
		return sqlite.Open(withForeignKeys(strings.TrimPrefix(databaseURL, sqliteScheme))), nil
	case strings.HasPrefix(databaseURL, "file:"):
		return sqlite.Open(withForeignKeys(databaseURL)), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q: expected postgres://, sqlite:// or file:", databaseURL)
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// ConnectDatabase establishes a connection to the configured database
func ConnectDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(log),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// SQLite serialises writers; one connection also keeps :memory: databases alive
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Info("Database connection established", zap.String("driver", dialector.Name()))
	return db, nil
}

// MigrateDatabase creates or updates the schema for every stock model
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDatabase closes the underlying connection pool
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
