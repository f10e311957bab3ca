package orderControllers

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

type checkoutFixture struct {
	user     models.User
	cart     models.Cart
	productA models.Product
	productB models.Product
}

// Cart with product A (10.00, stock 5) x2 and product B (5.50, stock 1) x1.
func seedCheckout(t *testing.T, db *gorm.DB) checkoutFixture {
	t.Helper()

	user := models.User{Username: "alice", Email: "alice@example.com", Password: "digest"}
	require.NoError(t, db.Create(&user).Error)

	category := models.Category{Name: "gadgets"}
	require.NoError(t, db.Create(&category).Error)

	productA := models.Product{Name: "A", Price: decimal.RequireFromString("10.00"), Stock: 5, CategoryID: category.ID}
	productB := models.Product{Name: "B", Price: decimal.RequireFromString("5.50"), Stock: 1, CategoryID: category.ID}
	require.NoError(t, db.Create(&productA).Error)
	require.NoError(t, db.Create(&productB).Error)

	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: productA.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: productB.ID, Quantity: 1}).Error)

	return checkoutFixture{user: user, cart: cart, productA: productA, productB: productB}
}

func TestPlaceOrder_Success(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCheckout(t, db)

	order, err := PlaceOrder(db, fx.user.ID, fx.cart.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.True(t, decimal.RequireFromString("25.50").Equal(order.TotalPrice),
		"total should be 25.50, got %s", order.TotalPrice)
	require.Len(t, order.Items, 2)

	var productA, productB models.Product
	require.NoError(t, db.First(&productA, fx.productA.ID).Error)
	require.NoError(t, db.First(&productB, fx.productB.ID).Error)
	assert.Equal(t, 3, productA.Stock)
	assert.Equal(t, 0, productB.Stock)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", fx.cart.ID).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining, "cart must be emptied")

	// The cart row itself persists.
	var cart models.Cart
	require.NoError(t, db.First(&cart, fx.cart.ID).Error)
}

func TestPlaceOrder_InsufficientStock_AllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCheckout(t, db)

	// Third item exceeds its stock; the entire checkout must be rejected.
	category := models.Category{Name: "scarce"}
	require.NoError(t, db.Create(&category).Error)
	productC := models.Product{Name: "C", Price: decimal.RequireFromString("1.00"), Stock: 0, CategoryID: category.ID}
	require.NoError(t, db.Create(&productC).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: fx.cart.ID, ProductID: productC.ID, Quantity: 1}).Error)

	_, err := PlaceOrder(db, fx.user.ID, fx.cart.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var orders, orderItems int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, orderItems)

	var productA models.Product
	require.NoError(t, db.First(&productA, fx.productA.ID).Error)
	assert.Equal(t, 5, productA.Stock, "no stock mutation on rejection")

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", fx.cart.ID).Count(&remaining).Error)
	assert.EqualValues(t, 3, remaining, "cart untouched on rejection")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Username: "bob", Email: "bob@example.com", Password: "digest"}
	require.NoError(t, db.Create(&user).Error)
	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)

	_, err := PlaceOrder(db, user.ID, cart.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_CartOwnedByAnotherUser(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCheckout(t, db)

	_, err := PlaceOrder(db, fx.user.ID+1, fx.cart.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestPlaceOrder_PriceSnapshotIsFrozen(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCheckout(t, db)

	order, err := PlaceOrder(db, fx.user.ID, fx.cart.ID)
	require.NoError(t, err)

	// Raising the product price afterwards must not touch the order.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", fx.productA.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ? AND product_id = ?", order.ID, fx.productA.ID).First(&item).Error)
	assert.True(t, decimal.RequireFromString("10.00").Equal(item.Price))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.True(t, decimal.RequireFromString("25.50").Equal(reloaded.TotalPrice))
}
