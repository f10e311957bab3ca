package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoply/shoply-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// newOrderReference yields a unique human-sortable order reference,
// e.g. 20250908130500-<uuid4>.
func newOrderReference() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder converts the cart's contents into an immutable order. The whole
// sequence runs in one transaction: validate every item's stock, compute the
// total with exact decimal arithmetic, create the order with frozen per-item
// prices, decrement stock, clear the cart. Any failure rolls everything back.
func PlaceOrder(db *gorm.DB, userID, cartID uint) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("id = ? AND user_id = ?", cartID, userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// First pass: validate stock for every item and total up the order
		// before anything is written. All-or-nothing: one short item rejects
		// the whole checkout.
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInsufficientStock
				}
				return err
			}
			if product.Stock < item.Quantity {
				return ErrInsufficientStock
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		order = models.Order{
			UserID:     userID,
			Reference:  newOrderReference(),
			TotalPrice: total,
			Status:     models.OrderStatusPending,
			Items:      orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Second pass: conditional decrement. A concurrent checkout that
		// drained the stock between the read above and here affects zero
		// rows, which rejects this order and rolls the transaction back.
		for _, item := range items {
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		// The cart row itself persists empty.
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// -------- Handlers --------

// POST /checkout/:user_id?cart_id=N
func Checkout(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		cartID, err := strconv.ParseUint(c.Query("cart_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart_id is required"})
			return
		}

		order, err := PlaceOrder(db, uint(userID), uint(cartID))
		if err != nil {
			switch {
			case errors.Is(err, ErrCartNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock"})
			default:
				logger.Error("checkout failed",
					zap.Uint64("user_id", userID),
					zap.Uint64("cart_id", cartID),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		logger.Info("order placed",
			zap.Uint("order_id", order.ID),
			zap.String("reference", order.Reference),
			zap.Uint64("user_id", userID),
			zap.String("total_price", order.TotalPrice.String()),
		)
		c.JSON(http.StatusOK, order)
	}
}

// GET /users/:user_id/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("Items").
			Where("user_id = ?", uint(userID)).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
