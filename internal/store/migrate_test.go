package store

import (
	"testing"

	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSeededPopulatesEmptyStore(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, EnsureSeeded(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)

	var product model.Product
	require.NoError(t, testDB.First(&product, 1).Error)
	assert.Equal(t, "Mouse Logitech G502 Negro", product.Name)
	assert.Equal(t, 25000.0, product.Price)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, EnsureSeeded(testDB))
	require.NoError(t, EnsureSeeded(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
}

func TestEnsureSeededReseedsAfterTruncate(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, EnsureSeeded(testDB))
	require.NoError(t, TruncateAllTables(testDB))
	require.NoError(t, EnsureSeeded(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
}

func TestEnsureSeededSkipsNonEmptyStore(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	existing := model.Product{ID: 50, Name: "Ya existente", Price: 1}
	require.NoError(t, testDB.Create(&existing).Error)

	require.NoError(t, EnsureSeeded(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
