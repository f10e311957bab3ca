package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetProducts lists products with conjunctive filters and offset/limit pagination.
// GET /products?category_id=&min_price=&max_price=&in_stock=&skip=&limit=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")

		if categoryID := c.Query("category_id"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			query = query.Where("category_id = ?", uint(cid))
		}

		if minPrice := c.Query("min_price"); minPrice != "" {
			mp, err := decimal.NewFromString(minPrice)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}

		if maxPrice := c.Query("max_price"); maxPrice != "" {
			mp, err := decimal.NewFromString(maxPrice)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		if inStock := c.Query("in_stock"); inStock != "" {
			want, err := strconv.ParseBool(inStock)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid in_stock"})
				return
			}
			if want {
				query = query.Where("stock > 0")
			} else {
				query = query.Where("stock = 0")
			}
		}

		skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
		if err != nil || skip < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skip"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}

		var products []models.Product
		if err := query.Order("id").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
