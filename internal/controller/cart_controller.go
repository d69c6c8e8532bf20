package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmorales-dev/tienda-sync/internal/assets"
	apperrors "github.com/rmorales-dev/tienda-sync/internal/errors"
	"github.com/rmorales-dev/tienda-sync/internal/middleware"
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/service"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
	resolver       *assets.Resolver
}

func NewCartController(
	cartService service.CartService,
	catalogService service.CatalogService,
	resolver *assets.Resolver,
) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
		resolver:       resolver,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CartLineResponse struct {
	model.CartLine
	ImageURL string  `json:"image_url"`
	Subtotal float64 `json:"subtotal"`
}

func (ctrl *CartController) cartPayload(cart model.Cart) gin.H {
	lines := make([]CartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, CartLineResponse{
			CartLine: line,
			ImageURL: ctrl.resolver.Resolve(line.ImageKey),
			Subtotal: line.Subtotal(),
		})
	}
	return gin.H{
		"lines": lines,
		"count": cart.TotalQuantity(),
		"total": cart.TotalPrice(),
		"empty": cart.IsEmpty(),
	}
}

// GetCart returns the consolidated cart with derived totals.
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cart, err := ctrl.cartService.Cart()
	if err != nil {
		log.Error("Failed to fetch cart", err, nil)
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, ctrl.cartPayload(cart))
}

// AddToCart merges a product into the cart. The product snapshot comes
// from the reconciled read: remote when reachable, local cache otherwise.
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := ctrl.catalogService.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product for cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add to cart")
		return
	}

	if err := ctrl.cartService.AddProduct(*product, req.Quantity); err != nil {
		if errors.Is(err, service.ErrInvalidQuantity) {
			apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "Quantity must be a positive integer")
			return
		}
		log.Error("Failed to add product to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add to cart")
		return
	}

	log.Info("Product added to cart", map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
}

// SetQuantity overwrites a line's quantity; zero or below removes the
// line.
// PUT /api/v1/cart/:productId
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.cartService.SetQuantity(uint(productID), *req.Quantity); err != nil {
		log.Error("Failed to set cart quantity", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// RemoveFromCart deletes the line for a product id; idempotent.
// DELETE /api/v1/cart/:productId
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	if err := ctrl.cartService.RemoveProduct(uint(productID)); err != nil {
		log.Error("Failed to remove product from cart", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
}

// ClearCart deletes every cart line.
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.cartService.Clear(); err != nil {
		log.Error("Failed to clear cart", err, nil)
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
