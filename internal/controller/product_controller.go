package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmorales-dev/tienda-sync/internal/assets"
	apperrors "github.com/rmorales-dev/tienda-sync/internal/errors"
	"github.com/rmorales-dev/tienda-sync/internal/export"
	"github.com/rmorales-dev/tienda-sync/internal/middleware"
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/service"
)

type ProductController struct {
	catalogService service.CatalogService
	resolver       *assets.Resolver
}

func NewProductController(catalogService service.CatalogService, resolver *assets.Resolver) *ProductController {
	return &ProductController{
		catalogService: catalogService,
		resolver:       resolver,
	}
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageKey    string  `json:"image_key"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

type ProductResponse struct {
	model.Product
	ImageURL string `json:"image_url"`
	HasStock bool   `json:"has_stock"`
}

func (ctrl *ProductController) toResponse(p model.Product) ProductResponse {
	return ProductResponse{
		Product:  p,
		ImageURL: ctrl.resolver.Resolve(p.ImageKey),
		HasStock: p.HasStock(),
	}
}

func (ctrl *ProductController) toResponseList(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ctrl.toResponse(p))
	}
	return out
}

// GetProducts returns the reconciled product list, optionally filtered
// by category.
// GET /api/v1/products?category=...
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		products []model.Product
		err      error
	)
	category := c.Query("category")
	if category != "" {
		products, err = ctrl.catalogService.ListByCategory(c.Request.Context(), category)
	} else {
		products, err = ctrl.catalogService.ListProducts(c.Request.Context())
	}
	if err != nil {
		log.Error("Failed to list products", err, map[string]interface{}{
			"category": category,
		})
		apperrors.InternalError(c, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": ctrl.toResponseList(products),
		"count":    len(products),
	})
}

// GetProductByID returns one product, refreshed from the remote catalog
// when reachable.
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	product, err := ctrl.catalogService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": ctrl.toResponse(*product)})
}

// CreateProduct creates a product remote-first with guaranteed local
// persistence.
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageKey:    req.ImageKey,
		Category:    req.Category,
		Stock:       req.Stock,
	}

	id, err := ctrl.catalogService.Create(c.Request.Context(), &product)
	if err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusCreated, gin.H{"product": ctrl.toResponse(product)})
}

// UpdateProduct updates a product, remote best-effort and always locally.
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product := model.Product{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageKey:    req.ImageKey,
		Category:    req.Category,
		Stock:       req.Stock,
	}

	if err := ctrl.catalogService.Update(c.Request.Context(), &product); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": ctrl.toResponse(product)})
}

// DeleteProduct deletes a product, remote best-effort and always locally.
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	product := model.Product{ID: uint(id)}
	if err := ctrl.catalogService.Delete(c.Request.Context(), &product); err != nil {
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// DeleteAllProducts clears the local product cache.
// DELETE /api/v1/products
func (ctrl *ProductController) DeleteAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.catalogService.DeleteAll(c.Request.Context()); err != nil {
		log.Error("Failed to delete all products", err, nil)
		apperrors.InternalError(c, "Failed to delete products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All products deleted"})
}

// ExportProducts streams the reconciled catalog as an .xlsx workbook.
// GET /api/v1/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		log.Error("Failed to list products for export", err, nil)
		apperrors.InternalError(c, "Failed to export products")
		return
	}

	workbook, err := export.ProductsWorkbook(products)
	if err != nil {
		log.Error("Failed to build export workbook", err, nil)
		apperrors.InternalError(c, "Failed to export products")
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	if err := workbook.Write(c.Writer); err != nil {
		log.Error("Failed to write export workbook", err, nil)
	}
}
