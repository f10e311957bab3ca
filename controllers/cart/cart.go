package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// -------- Core Logic --------

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access. The insert goes through ON CONFLICT DO NOTHING on the user_id
// unique index, so concurrent calls cannot produce two carts for one user.
func GetOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	stub := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&stub).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the user's cart. An existing (cart, product)
// row has its quantity incremented instead of a second row being inserted.
// Stock is not checked here; only checkout validates stock.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &item, nil
}

// UpdateItemQuantity sets the quantity of an existing cart item.
func UpdateItemQuantity(db *gorm.DB, cartItemID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.First(&item, cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes a cart item, reporting whether a row existed.
func RemoveItem(db *gorm.DB, cartItemID uint) (bool, error) {
	result := db.Delete(&models.CartItem{}, cartItemID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// -------- Handlers --------

// GET /users/:user_id/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseUserID(c)
		if !ok {
			return
		}

		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// POST /users/:user_id/cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddItem(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// PUT /users/:user_id/cart/update/:item_id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateItemQuantity(db, uint(itemID), input.Quantity)
		if err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /users/:user_id/cart/remove/:item_id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		removed, err := RemoveItem(db, uint(itemID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

func parseUserID(c *gin.Context) (uint, bool) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(userID), true
}
