package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rmorales-dev/tienda-sync/internal/catalog"
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/projection"
	"github.com/rmorales-dev/tienda-sync/internal/repository"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CatalogService reconciles the remote catalog with the local cache.
// Reads are remote-first with local fallback; writes are local-guaranteed
// with a best-effort remote attempt. Remote failures never propagate to
// the caller — they degrade to the next data source. Local-store failures
// do propagate: the cache is the durability guarantee, so a broken cache
// is not something this layer can paper over.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (uint, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, product *model.Product) error
	DeleteAll(ctx context.Context) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	remote      *catalog.Client
	broker      *projection.Broker
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	remote *catalog.Client,
	broker *projection.Broker,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		remote:      remote,
		broker:      broker,
	}
}

func (s *catalogService) notifyCatalog() {
	if s.broker != nil {
		s.broker.Publish(projection.TopicCatalog)
	}
}

// ListProducts fetches the whole catalog remote-first. On success the
// result set is upserted into the local cache and returned; on any remote
// failure the local cache's current contents are returned instead, even
// if empty.
func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	logger.Debug("Fetching product catalog from remote service", nil)

	records, err := s.remote.List(ctx)
	if err == nil {
		products := make([]model.Product, 0, len(records))
		for _, rec := range records {
			products = append(products, rec.ToModel())
		}

		if err := s.productRepo.UpsertAll(products); err != nil {
			return nil, err
		}
		s.notifyCatalog()

		logger.Info("Catalog fetched from remote and cached locally", map[string]interface{}{
			"count": len(products),
		})
		return products, nil
	}

	logger.Warn("Remote catalog fetch failed, using local cache", map[string]interface{}{
		"error": err.Error(),
	})

	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		logger.Warn("Local cache is empty", nil)
	} else {
		logger.Info("Catalog served from local cache", map[string]interface{}{
			"count": len(products),
		})
	}
	return products, nil
}

// ListByCategory asks the remote service for a server-side filtered list.
// On failure it falls back to filtering the full local list in memory,
// case-insensitively. The fallback does not refresh the cache: the remote
// call failed, so there is nothing fresh to write.
func (s *catalogService) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	logger.Debug("Fetching category from remote service", map[string]interface{}{
		"category": category,
	})

	records, err := s.remote.ListByCategory(ctx, category)
	if err == nil {
		products := make([]model.Product, 0, len(records))
		for _, rec := range records {
			products = append(products, rec.ToModel())
		}
		logger.Info("Category fetched from remote", map[string]interface{}{
			"category": category,
			"count":    len(products),
		})
		return products, nil
	}

	logger.Warn("Remote category fetch failed, filtering local cache", map[string]interface{}{
		"category": category,
		"error":    err.Error(),
	})

	all, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Product, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}

	logger.Info("Category served from local cache", map[string]interface{}{
		"category": category,
		"count":    len(filtered),
	})
	return filtered, nil
}

// GetByID fetches one product remote-first, refreshing the local copy on
// success. On any remote failure it falls back to the local cache;
// ErrProductNotFound means neither source has the record.
func (s *catalogService) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	record, err := s.remote.GetByID(ctx, id)
	if err == nil {
		product := record.ToModel()
		if err := s.productRepo.Upsert(&product); err != nil {
			return nil, err
		}
		s.notifyCatalog()

		logger.Debug("Product refreshed from remote", map[string]interface{}{
			"product_id": product.ID,
		})
		return &product, nil
	}

	logger.Warn("Remote product fetch failed, using local cache", map[string]interface{}{
		"product_id": id,
		"error":      err.Error(),
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create attempts a remote create first. When the remote call succeeds,
// whatever record the service echoes back (or the submitted product when
// the body is empty) is persisted locally; when it fails, the submitted
// product is persisted locally anyway. Either way the caller gets the
// local-store id — remote unavailability alone never fails a create.
func (s *catalogService) Create(ctx context.Context, product *model.Product) (uint, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name": product.Name,
	})

	toPersist := *product

	created, err := s.remote.Create(ctx, catalog.FromModel(*product))
	if err != nil {
		logger.Warn("Remote create failed, persisting locally only", map[string]interface{}{
			"name":  product.Name,
			"error": err.Error(),
		})
	} else if created != nil {
		toPersist = created.ToModel()
	}

	if err := s.productRepo.Upsert(&toPersist); err != nil {
		return 0, err
	}
	s.notifyCatalog()

	*product = toPersist
	logger.Info("Product persisted locally", map[string]interface{}{
		"product_id": toPersist.ID,
	})
	return toPersist.ID, nil
}

// Update attempts a remote update, then unconditionally applies the
// update to the local cache so it tracks user intent even when the sync
// is unconfirmed.
func (s *catalogService) Update(ctx context.Context, product *model.Product) error {
	if err := s.remote.Update(ctx, product.ID, catalog.FromModel(*product)); err != nil {
		logger.Warn("Remote update failed, updating locally only", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}

	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.notifyCatalog()
	return nil
}

// Delete attempts a remote delete, then unconditionally deletes locally.
func (s *catalogService) Delete(ctx context.Context, product *model.Product) error {
	if err := s.remote.Delete(ctx, product.ID); err != nil {
		logger.Warn("Remote delete failed, deleting locally only", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}

	if err := s.productRepo.Delete(product.ID); err != nil {
		return err
	}
	s.notifyCatalog()
	return nil
}

// DeleteAll clears the local cache. There is no remote equivalent.
func (s *catalogService) DeleteAll(ctx context.Context) error {
	if err := s.productRepo.DeleteAll(); err != nil {
		return err
	}
	s.notifyCatalog()
	return nil
}
