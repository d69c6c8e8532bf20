package repository

import (
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository is the local-store surface for consolidated cart lines.
// AddQuantity is a single-statement upsert keyed on product_id, so two
// concurrent adds for the same product merge instead of racing on a
// read-modify-write.
type CartRepository interface {
	FindAll() ([]model.CartLine, error)
	FindByProductID(productID uint) (*model.CartLine, error)
	AddQuantity(line *model.CartLine) error
	SetQuantity(productID uint, quantity int) error
	DeleteByProductID(productID uint) error
	DeleteAll() error
	Total() (float64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindAll() ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.db.Order("id ASC").Find(&lines).Error; err != nil {
		logger.Error("Failed to list cart lines from local store", err, nil)
		return nil, err
	}

	logger.Debug("Cart lines listed from local store", map[string]interface{}{
		"count": len(lines),
	})
	return lines, nil
}

func (r *cartRepository) FindByProductID(productID uint) (*model.CartLine, error) {
	var line model.CartLine
	err := r.db.Where("product_id = ?", productID).First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) AddQuantity(line *model.CartLine) error {
	logger.Debug("Adding quantity to cart line in local store", map[string]interface{}{
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
	})

	// Insert, or on conflict by product id add to the existing quantity.
	// The unqualified column refers to the stored row on both SQLite and
	// Postgres.
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + excluded.quantity"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(line).Error
	if err != nil {
		logger.Error("Failed to add quantity to cart line in local store", err, map[string]interface{}{
			"product_id": line.ProductID,
			"quantity":   line.Quantity,
		})
		return err
	}

	logger.Debug("Cart line quantity added in local store", map[string]interface{}{
		"product_id": line.ProductID,
	})
	return nil
}

func (r *cartRepository) SetQuantity(productID uint, quantity int) error {
	logger.Debug("Setting cart line quantity in local store", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	})

	if err := r.db.Model(&model.CartLine{}).
		Where("product_id = ?", productID).
		Update("quantity", quantity).Error; err != nil {
		logger.Error("Failed to set cart line quantity in local store", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByProductID(productID uint) error {
	logger.Debug("Deleting cart line from local store", map[string]interface{}{
		"product_id": productID,
	})

	if err := r.db.Where("product_id = ?", productID).
		Delete(&model.CartLine{}).Error; err != nil {
		logger.Error("Failed to delete cart line from local store", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteAll() error {
	logger.Debug("Deleting all cart lines from local store", nil)

	if err := r.db.Where("1 = 1").Delete(&model.CartLine{}).Error; err != nil {
		logger.Error("Failed to delete all cart lines from local store", err, nil)
		return err
	}
	return nil
}

func (r *cartRepository) Total() (float64, error) {
	var total float64
	err := r.db.Model(&model.CartLine{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to compute cart total in local store", err, nil)
		return 0, err
	}
	return total, nil
}
