package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rmorales-dev/tienda-sync/config"
	"github.com/rmorales-dev/tienda-sync/internal/controller"
	"github.com/rmorales-dev/tienda-sync/internal/middleware"
)

type Router struct {
	productController *controller.ProductController
	cartController    *controller.CartController
	streamController  *controller.StreamController
	uploadController  *controller.UploadController
	config            *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	streamController *controller.StreamController,
	uploadController *controller.UploadController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController: productController,
		cartController:    cartController,
		streamController:  streamController,
		uploadController:  uploadController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "tienda-sync is running",
		})
	})

	// Serve bundled demo images
	router.Static("/images", "./images")

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/export", r.productController.ExportProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.POST("", r.productController.CreateProduct)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)
			products.DELETE("", r.productController.DeleteAllProducts)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:productId", r.cartController.SetQuantity)
			cart.DELETE("/:productId", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("/presigned", r.uploadController.PresignUpload)
		}
	}

	ws := router.Group("/ws")
	{
		ws.GET("/cart", r.streamController.CartStream)
		ws.GET("/catalog", r.streamController.CatalogStream)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
