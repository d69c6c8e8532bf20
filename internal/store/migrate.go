package store

import (
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations on the given store handle.
func Migrate(db *gorm.DB) error {
	logger.Info("Running local store migrations...")

	models := []interface{}{
		&model.Product{},
		&model.CartLine{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Local store migrations completed", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// EnsureSeeded inserts the demo catalog when the product table is empty.
// It is idempotent and runs synchronously: the composition root awaits it
// before serving the first read, so startup never races the seed.
func EnsureSeeded(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count products for seeding", err)
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	return Seed(db)
}

// Seed inserts the demo catalog unconditionally.
func Seed(db *gorm.DB) error {
	logger.Info("Seeding demo catalog...")

	products := seedProducts()
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			logger.Error("Failed to create seed product", err, map[string]interface{}{
				"name": products[i].Name,
			})
			return err
		}
	}

	logger.Info("Demo catalog seeded", map[string]interface{}{
		"total_products": len(products),
	})
	return nil
}

func seedProducts() []model.Product {
	return []model.Product{
		{
			ID:          1,
			Name:        "Mouse Logitech G502 Negro",
			Description: "Ratón para juegos ergonómico con sensor óptico HERO de hasta 25.600 DPI, 11 botones programables, iluminación RGB y pesas ajustables.",
			Price:       25000.0,
			ImageKey:    "g502",
			Category:    "Periféricos",
			Stock:       12,
		},
		{
			ID:          2,
			Name:        "Mouse Logitech G502 X Blanco",
			Description: "La última adición a la gama G502: 89 gramos, interruptores LIGHTFORCE híbridos óptico-mecánicos y sensor HERO 25K.",
			Price:       45000.0,
			ImageKey:    "g502x",
			Category:    "Periféricos",
			Stock:       10,
		},
		{
			ID:          3,
			Name:        "Audífonos Gamer Chinos",
			Description: "Audífonos gaming over-ear con sonido envolvente 7.1, micrófono con cancelación de ruido y almohadillas de espuma viscoelástica.",
			Price:       30000.0,
			ImageKey:    "audi1",
			Category:    "Audio",
			Stock:       12,
		},
		{
			ID:          4,
			Name:        "PC Gamer AlienWare",
			Description: "Escritorio de alto rendimiento con tarjetas gráficas NVIDIA GeForce RTX serie 50 o RTX 4070 Ti y procesadores Intel Core Ultra 9 o i7-13700KF.",
			Price:       45000.0,
			ImageKey:    "pc",
			Category:    "Computacion",
			Stock:       9,
		},
		{
			ID:          5,
			Name:        "Play Station 5 Pro",
			Description: "Gráficos en 4K/8K, trazado de rayos y juego a una frecuencia de hasta 120 fps.",
			Price:       380000.0,
			ImageKey:    "ps5",
			Category:    "Consolas",
			Stock:       6,
		},
		{
			ID:          6,
			Name:        "Silla Gamer Secret Lab",
			Description: "Silla ergonómica multipremiada, la preferida de jugadores de esports y profesionales.",
			Price:       189000.0,
			ImageKey:    "sillagamer",
			Category:    "Almacenamiento",
			Stock:       20,
		},
	}
}
