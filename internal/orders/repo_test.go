package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paketshop/storefront-backend/pkg/db/models"
	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  total INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'Kutilmoqda',
  date TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func sampleOrder(id string) *models.Order {
	return &models.Order{
		ID:            id,
		CustomerName:  "Aziz Karimov",
		Phone:         "+998901234567",
		TotalUZS:      900_000,
		Status:        enums.OrderStatusPending,
		Date:          "2026-09-01",
		PaymentMethod: enums.PaymentMethodOnline.Label(),
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder("ORD-1756700000000"))
	require.NoError(t, err)
	require.NotNil(t, created)

	found, err := repo.FindByID(ctx, "ORD-1756700000000")
	require.NoError(t, err)
	assert.Equal(t, "Aziz Karimov", found.CustomerName)
	assert.Equal(t, int64(900_000), found.TotalUZS)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
	assert.Equal(t, "Paynet", found.PaymentMethod)
}

func TestRepositoryFindMissingOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), "ORD-0")
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRepositoryListRecent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, id := range []string{"ORD-1", "ORD-2", "ORD-3"} {
		_, err := repo.Create(ctx, sampleOrder(id))
		require.NoError(t, err)
	}

	orders, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
