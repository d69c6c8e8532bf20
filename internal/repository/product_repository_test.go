package repository

import (
	"testing"

	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := store.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewProductRepository(testDB)
}

func TestProductRepository_UpsertGeneratesID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer store.CleanupTestDB(testDB)

	product := &model.Product{
		Name:     "Mouse Inalámbrico",
		Price:    15000,
		Category: "Periféricos",
		Stock:    5,
	}

	err := repo.Upsert(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_UpsertReplacesByID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer store.CleanupTestDB(testDB)

	original := &model.Product{ID: 7, Name: "Teclado", Price: 10000, Category: "Periféricos", Stock: 3}
	require.NoError(t, repo.Upsert(original))

	// A remote refresh for the same id replaces the local copy.
	refreshed := &model.Product{ID: 7, Name: "Teclado Mecánico", Price: 12000, Category: "Periféricos", Stock: 8}
	require.NoError(t, repo.Upsert(refreshed))

	found, err := repo.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Teclado Mecánico", found.Name)
	assert.Equal(t, 12000.0, found.Price)
	assert.Equal(t, 8, found.Stock)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductRepository_UpsertAll(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer store.CleanupTestDB(testDB)

	require.NoError(t, repo.Upsert(&model.Product{ID: 1, Name: "Viejo", Price: 100, Category: "Audio", Stock: 1}))

	products := []model.Product{
		{ID: 1, Name: "Nuevo", Price: 200, Category: "Audio", Stock: 2},
		{ID: 2, Name: "Otro", Price: 300, Category: "Video", Stock: 3},
	}
	require.NoError(t, repo.UpsertAll(products))

	found, err := repo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", found.Name)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestProductRepository_FindAllOrderedByName(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer store.CleanupTestDB(testDB)

	require.NoError(t, repo.Upsert(&model.Product{Name: "Zapatilla", Price: 1, Category: "Otros"}))
	require.NoError(t, repo.Upsert(&model.Product{Name: "Audífonos", Price: 1, Category: "Audio"}))
	require.NoError(t, repo.Upsert(&model.Product{Name: "Mouse", Price: 1, Category: "Periféricos"}))

	products, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Audífonos", products[0].Name)
	assert.Equal(t, "Mouse", products[1].Name)
	assert.Equal(t, "Zapatilla", products[2].Name)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer store.CleanupTestDB(testDB)

	product := &model.Product{Name: "Mouse", Price: 1000, Category: "Periféricos"}
	require.NoError(t, repo.Upsert(product))

	assert.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_DeleteAll(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer store.CleanupTestDB(testDB)

	require.NoError(t, repo.Upsert(&model.Product{Name: "Uno", Price: 1}))
	require.NoError(t, repo.Upsert(&model.Product{Name: "Dos", Price: 2}))

	assert.NoError(t, repo.DeleteAll())

	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, products, 0)
}
