package cartControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shoply/shoply-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A pooled second connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()

	category := models.Category{Name: "seed-" + name}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestGetOrCreateCart_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)

	second, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItem_MergesQuantities(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "widget", "9.99", 10)

	item, err := AddItem(db, 1, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = AddItem(db, 1, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "same product must merge into one row")
}

func TestAddItem_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddItem(db, 1, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "widget", "9.99", 10)

	item, err := AddItem(db, 1, product.ID, 2)
	require.NoError(t, err)

	updated, err := UpdateItemQuantity(db, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = UpdateItemQuantity(db, 999, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "widget", "9.99", 10)

	item, err := AddItem(db, 1, product.ID, 2)
	require.NoError(t, err)

	removed, err := RemoveItem(db, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveItem(db, item.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
