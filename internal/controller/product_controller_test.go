package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmorales-dev/tienda-sync/internal/assets"
	"github.com/rmorales-dev/tienda-sync/internal/catalog"
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/projection"
	"github.com/rmorales-dev/tienda-sync/internal/repository"
	"github.com/rmorales-dev/tienda-sync/internal/service"
	"github.com/rmorales-dev/tienda-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T, remoteURL string) (*gin.Engine, repository.ProductRepository) {
	testDB, err := store.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	remote := catalog.NewClient(remoteURL, 500*time.Millisecond)
	catalogService := service.NewCatalogService(productRepo, remote, projection.NewBroker())
	resolver := assets.NewResolver("https://cdn.example.com")
	controller := NewProductController(catalogService, resolver)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", controller.GetProducts)
	router.GET("/products/export", controller.ExportProducts)
	router.GET("/products/:id", controller.GetProductByID)
	router.POST("/products", controller.CreateProduct)
	router.PUT("/products/:id", controller.UpdateProduct)
	router.DELETE("/products/:id", controller.DeleteProduct)
	router.DELETE("/products", controller.DeleteAllProducts)

	return router, productRepo
}

// offlineURL makes every remote call fail with a connection error.
const offlineURL = "http://127.0.0.1:1"

func TestProductController_GetProducts_FromRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "nombre": "Mouse", "precio": 25000, "imagen": "g502", "stock": 12}]`))
	}))
	defer server.Close()

	router, _ := setupProductControllerTest(t, server.URL)

	w := doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])

	products := response["products"].([]interface{})
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Mouse", first["name"])
	assert.Equal(t, "https://cdn.example.com/images/g502.png", first["image_url"])
	assert.Equal(t, true, first["has_stock"])
}

func TestProductController_GetProducts_OfflineServesCache(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	require.NoError(t, productRepo.Upsert(&model.Product{ID: 1, Name: "Mouse", Price: 25000}))

	w := doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestProductController_GetProducts_CategoryFilterOffline(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	require.NoError(t, productRepo.Upsert(&model.Product{ID: 1, Name: "Audífonos", Category: "Audio"}))
	require.NoError(t, productRepo.Upsert(&model.Product{ID: 2, Name: "Monitor", Category: "Video"}))

	w := doJSON(t, router, http.MethodGet, "/products?category=audio", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestProductController_GetProductByID_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t, offlineURL)

	w := doJSON(t, router, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_GetProductByID_InvalidID(t *testing.T) {
	router, _ := setupProductControllerTest(t, offlineURL)

	w := doJSON(t, router, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_CreateProduct_OfflinePersistsLocally(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	w := doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":     "Nuevo Producto",
		"price":    1000,
		"category": "Otros",
		"stock":    5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	count, err := productRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductController_CreateProduct_MissingName(t *testing.T) {
	router, _ := setupProductControllerTest(t, offlineURL)

	w := doJSON(t, router, http.MethodPost, "/products", gin.H{"price": 1000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_UpdateProduct_Offline(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	require.NoError(t, productRepo.Upsert(&model.Product{ID: 1, Name: "Mouse", Price: 25000}))

	w := doJSON(t, router, http.MethodPut, "/products/1", gin.H{
		"name":  "Mouse Pro",
		"price": 30000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	found, err := productRepo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Mouse Pro", found.Name)
}

func TestProductController_DeleteProduct_Offline(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	require.NoError(t, productRepo.Upsert(&model.Product{ID: 1, Name: "Mouse"}))

	w := doJSON(t, router, http.MethodDelete, "/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	count, err := productRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestProductController_DeleteAllProducts(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	require.NoError(t, productRepo.Upsert(&model.Product{ID: 1, Name: "Uno"}))
	require.NoError(t, productRepo.Upsert(&model.Product{ID: 2, Name: "Dos"}))

	w := doJSON(t, router, http.MethodDelete, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	count, err := productRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestProductController_ExportProducts(t *testing.T) {
	router, productRepo := setupProductControllerTest(t, offlineURL)

	require.NoError(t, productRepo.Upsert(&model.Product{ID: 1, Name: "Mouse", Price: 25000}))

	w := doJSON(t, router, http.MethodGet, "/products/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}
