package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/config"
	productcontroller "github.com/shoply/shoply-api/controllers/product"
	"github.com/shoply/shoply-api/middleware"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers category and product endpoints, JWT-protected.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	categories := r.Group("/categories")
	categories.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		categories.GET("", productcontroller.GetAllCategories(db))
		categories.POST("", productcontroller.CreateCategory(db))
		categories.PUT("/:id", productcontroller.UpdateCategory(db))
		categories.DELETE("/:id", productcontroller.DeleteCategory(db))
	}

	products := r.Group("/products")
	products.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
		products.POST("", productcontroller.CreateProduct(db))
		products.PUT("/:id", productcontroller.UpdateProduct(db))
		products.DELETE("/:id", productcontroller.DeleteProduct(db))
	}
}
