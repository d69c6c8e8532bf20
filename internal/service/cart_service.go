package service

import (
	"errors"

	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/projection"
	"github.com/rmorales-dev/tienda-sync/internal/repository"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// CartService keeps at most one consolidated line per product id and
// derives cart totals. All cart mutation must go through this service;
// the product-id uniqueness invariant lives here and in the store's
// additive upsert, not in callers.
type CartService interface {
	Cart() (model.Cart, error)
	Total() (float64, error)
	AddProduct(product model.Product, quantity int) error
	SetQuantity(productID uint, quantity int) error
	RemoveProduct(productID uint) error
	Clear() error
}

type cartService struct {
	cartRepo repository.CartRepository
	broker   *projection.Broker
}

func NewCartService(cartRepo repository.CartRepository, broker *projection.Broker) CartService {
	return &cartService{
		cartRepo: cartRepo,
		broker:   broker,
	}
}

func (s *cartService) notifyCart() {
	if s.broker != nil {
		s.broker.Publish(projection.TopicCart)
	}
}

// Cart returns the current consolidated cart snapshot.
func (s *cartService) Cart() (model.Cart, error) {
	lines, err := s.cartRepo.FindAll()
	if err != nil {
		return model.Cart{}, err
	}
	return model.Cart{Lines: lines}, nil
}

// Total returns the current cart total; 0 when the cart is empty.
func (s *cartService) Total() (float64, error) {
	return s.cartRepo.Total()
}

// AddProduct merges the given quantity into the line for the product id,
// creating the line with a denormalized product snapshot on first add.
// A non-positive quantity is rejected; removal goes through SetQuantity
// or RemoveProduct, never through a negative add.
func (s *cartService) AddProduct(product model.Product, quantity int) error {
	if quantity <= 0 {
		logger.Warn("Rejected cart add with non-positive quantity", map[string]interface{}{
			"product_id": product.ID,
			"quantity":   quantity,
		})
		return ErrInvalidQuantity
	}

	logger.Info("Adding product to cart", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   quantity,
	})

	line := model.NewCartLine(product, quantity)
	if err := s.cartRepo.AddQuantity(&line); err != nil {
		logger.Error("Failed to add product to cart", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	s.notifyCart()
	return nil
}

// SetQuantity overwrites the line's quantity (replace, not merge).
// A quantity of zero or less removes the line.
func (s *cartService) SetQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		logger.Debug("Quantity set to zero or below, removing line", map[string]interface{}{
			"product_id": productID,
			"quantity":   quantity,
		})
		return s.RemoveProduct(productID)
	}

	logger.Info("Setting cart line quantity", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	})

	if err := s.cartRepo.SetQuantity(productID, quantity); err != nil {
		logger.Error("Failed to set cart line quantity", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	s.notifyCart()
	return nil
}

// RemoveProduct deletes the line for the product id. Removing an absent
// line is a no-op.
func (s *cartService) RemoveProduct(productID uint) error {
	logger.Info("Removing product from cart", map[string]interface{}{
		"product_id": productID,
	})

	if err := s.cartRepo.DeleteByProductID(productID); err != nil {
		logger.Error("Failed to remove product from cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	s.notifyCart()
	return nil
}

// Clear deletes every cart line.
func (s *cartService) Clear() error {
	logger.Info("Clearing cart", nil)

	if err := s.cartRepo.DeleteAll(); err != nil {
		logger.Error("Failed to clear cart", err, nil)
		return err
	}

	s.notifyCart()
	return nil
}
