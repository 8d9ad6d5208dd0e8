package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paketshop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  price INTEGER NOT NULL,
  category TEXT NOT NULL,
  image TEXT,
  short_description TEXT,
  items_per_package INTEGER NOT NULL DEFAULT 1,
  stock INTEGER,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	seed := []models.Product{
		{ID: 1, Name: "Plov paketi", PriceUZS: 45_000, Category: "oziq-ovqat", ItemsPerPackage: 1, IsActive: true},
		{ID: 2, Name: "Non to'plami", PriceUZS: 12_000, Category: "oziq-ovqat", ItemsPerPackage: 4, IsActive: true},
		{ID: 3, Name: "Eski mahsulot", PriceUZS: 9_000, Category: "boshqa", ItemsPerPackage: 1, IsActive: false},
	}
	require.NoError(t, db.Create(&seed).Error)

	return db
}

func TestRepositoryListSkipsInactive(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	products, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, products, 2)
	for _, product := range products {
		assert.True(t, product.IsActive)
	}
}

func TestRepositoryListByCategory(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	products, err := repo.List(context.Background(), "oziq-ovqat")
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestRepositoryFindByID(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	product, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Non to'plami", product.Name)
	assert.Equal(t, 4, product.ItemsPerPackage)
}

func TestRepositoryFindMissingProduct(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	_, err := repo.FindByID(context.Background(), 99)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
