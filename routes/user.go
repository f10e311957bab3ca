package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/config"
	cartControllers "github.com/shoply/shoply-api/controllers/cart"
	userControllers "github.com/shoply/shoply-api/controllers/user"
	"github.com/shoply/shoply-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/users/*" endpoints, JWT-protected.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/users/:user_id")
	userGroup.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))
		userGroup.DELETE("", userControllers.DeleteUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(db))
			cartGroup.POST("/add", cartControllers.AddToCart(db))
			cartGroup.PUT("/update/:item_id", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/remove/:item_id", cartControllers.RemoveFromCart(db))
		}
	}
}
