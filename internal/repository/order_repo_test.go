package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/shariarfaisal/snapshop-backend/internal/apperr"
	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests exercise the stock-reserving transaction against a real
// Postgres; the row-locking behavior under test does not exist in fakes.
// They run when TEST_DATABASE_URL points at a disposable database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Store{}, &model.Category{}, &model.Product{},
		&model.Variant{}, &model.Media{}, &model.ProductAttribute{},
		&model.Customer{}, &model.Order{}, &model.OrderItem{},
	))
	return db
}

func seedStore(t *testing.T, db *gorm.DB) *model.Store {
	t.Helper()

	suffix := uuid.NewString()[:8]
	owner := &model.User{Name: "Owner", Email: fmt.Sprintf("owner-%s@example.com", suffix)}
	require.NoError(t, owner.SetPassword("hunter2hunter2"))
	require.NoError(t, db.Create(owner).Error)

	store := &model.Store{
		Name:    "Test Store",
		Domain:  "store-" + suffix,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, name string, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		StoreID:   storeID,
		Name:      name,
		BasePrice: decimal.RequireFromString("10.00"),
		Stock:     stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateWithStock_ConcurrentOrdersNeverOversell(t *testing.T) {
	db := testDB(t)
	store := seedStore(t, db)
	product := seedProduct(t, db, store.ID, "Limited Mug "+uuid.NewString()[:8], 3)

	repo := NewOrderRepo(db)

	const attempts = 6
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order := &model.Order{
				StoreID:     store.ID,
				TotalPrice:  decimal.RequireFromString("10.00"),
				OrderStatus: model.OrderPending,
				Items: []model.OrderItem{{
					ProductID: product.ID,
					Quantity:  1,
					Price:     decimal.RequireFromString("10.00"),
				}},
			}
			results <- repo.CreateWithStock(context.Background(), order)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		rejected++
		assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))
	}
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 3, rejected)

	// Decrements match successful orders exactly; stock never went negative
	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 0, fresh.Stock)

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Where("store_id = ?", store.ID).Count(&orderCount).Error)
	assert.Equal(t, int64(3), orderCount)
}

func TestCreateWithStock_MultiLineFailureRollsBackEverything(t *testing.T) {
	db := testDB(t)
	store := seedStore(t, db)
	plenty := seedProduct(t, db, store.ID, "Plenty "+uuid.NewString()[:8], 5)
	scarce := seedProduct(t, db, store.ID, "Scarce "+uuid.NewString()[:8], 1)

	repo := NewOrderRepo(db)

	order := &model.Order{
		StoreID:     store.ID,
		TotalPrice:  decimal.RequireFromString("50.00"),
		OrderStatus: model.OrderPending,
		Items: []model.OrderItem{
			{ProductID: plenty.ID, Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: scarce.ID, Quantity: 3, Price: decimal.RequireFromString("10.00")},
		},
	}

	err := repo.CreateWithStock(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	// Nothing persisted: no order, no items, no partial decrement
	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Where("store_id = ?", store.ID).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var freshPlenty, freshScarce model.Product
	require.NoError(t, db.First(&freshPlenty, "id = ?", plenty.ID).Error)
	require.NoError(t, db.First(&freshScarce, "id = ?", scarce.ID).Error)
	assert.Equal(t, 5, freshPlenty.Stock)
	assert.Equal(t, 1, freshScarce.Stock)
}

func TestCreateWithStock_DuplicateLinesAggregate(t *testing.T) {
	db := testDB(t)
	store := seedStore(t, db)
	product := seedProduct(t, db, store.ID, "Twice "+uuid.NewString()[:8], 3)

	repo := NewOrderRepo(db)

	// Two lines for the same product must be checked against their sum
	order := &model.Order{
		StoreID:     store.ID,
		TotalPrice:  decimal.RequireFromString("40.00"),
		OrderStatus: model.OrderPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: product.ID, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		},
	}

	err := repo.CreateWithStock(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	var fresh model.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 3, fresh.Stock)
}
