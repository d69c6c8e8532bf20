package repository

import (
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the local-store surface for cached catalog
// products. Inserts are upsert-by-id: a row fetched from the remote
// catalog always replaces the local copy with the same id.
type ProductRepository interface {
	Upsert(product *model.Product) error
	UpsertAll(products []model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	DeleteAll() error
	Count() (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Upsert(product *model.Product) error {
	logger.Debug("Upserting product in local store", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
	})

	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(product).Error; err != nil {
		logger.Error("Failed to upsert product in local store", err, map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
		})
		return err
	}

	logger.Debug("Product upserted in local store", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) UpsertAll(products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	logger.Debug("Upserting products in local store", map[string]interface{}{
		"count": len(products),
	})

	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&products).Error; err != nil {
		logger.Error("Failed to upsert products in local store", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Debug("Products upserted in local store", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Order("name ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products from local store", err, nil)
		return nil, err
	}

	logger.Debug("Products listed from local store", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in local store", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logger.Debug("Product not found in local store", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in local store", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in local store", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from local store", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from local store", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) DeleteAll() error {
	logger.Debug("Deleting all products from local store", nil)

	if err := r.db.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
		logger.Error("Failed to delete all products from local store", err, nil)
		return err
	}
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count products in local store", err, nil)
		return 0, err
	}
	return count, nil
}
