package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name       string          `json:"name" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Stock      int             `json:"stock" binding:"min=0"`
	CategoryID uint            `json:"category_id" binding:"required"`
}

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		product := models.Product{
			Name:       input.Name,
			Price:      input.Price,
			Stock:      input.Stock,
			CategoryID: input.CategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		product.Category = &category
		c.JSON(http.StatusOK, product)
	}
}
