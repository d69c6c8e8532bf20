package store

import (
	"fmt"

	"github.com/rmorales-dev/tienda-sync/config"
	appLogger "github.com/rmorales-dev/tienda-sync/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the local store and returns the handle. The handle is
// owned by the caller (the composition root) and passed into repositories
// explicitly; there is no package-level instance.
func Open(cfg *config.StoreConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // we log through pkg/logger
	}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "postgres":
		appLogger.Info("Connecting to local store", map[string]interface{}{
			"driver":   cfg.Driver,
			"host":     cfg.Host,
			"port":     cfg.Port,
			"database": cfg.DBName,
		})
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	case "sqlite", "":
		appLogger.Info("Connecting to local store", map[string]interface{}{
			"driver": "sqlite",
			"path":   cfg.SQLitePath,
		})
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// SQLite: one writer connection, writes serialize at the store.
		sqlDB.SetMaxOpenConns(1)
	}

	appLogger.Info("Local store connection established", nil)
	return db, nil
}

// Close closes the underlying connection of the given handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
