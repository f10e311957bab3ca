package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int             `json:"stock"`
	CategoryID *uint            `json:"category_id"`
}

// PUT /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
				return
			}
			updates["stock"] = *input.Stock
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			updates["category_id"] = *input.CategoryID
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
