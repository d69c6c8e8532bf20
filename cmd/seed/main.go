package main

import (
	"flag"

	"github.com/rmorales-dev/tienda-sync/config"
	"github.com/rmorales-dev/tienda-sync/internal/store"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

// Seeds the local store with the demo catalog. With -force the catalog
// is inserted even when products already exist.
func main() {
	force := flag.Bool("force", false, "seed even when products already exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	db, err := store.Open(&cfg.Store)
	if err != nil {
		logger.Fatal("Failed to open local store", err)
	}
	defer store.Close(db)

	if err := store.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if *force {
		err = store.Seed(db)
	} else {
		err = store.EnsureSeeded(db)
	}
	if err != nil {
		logger.Fatal("Failed to seed local store", err)
	}

	logger.Info("Seeding completed")
}
