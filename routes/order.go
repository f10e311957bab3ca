package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/config"
	orderControllers "github.com/shoply/shoply-api/controllers/order"
	"github.com/shoply/shoply-api/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers checkout and order history endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	r.POST("/checkout/:user_id", middleware.RequireAuth(cfg.JWTSecret), orderControllers.Checkout(db, logger))

	r.GET("/users/:user_id/orders", middleware.RequireAuth(cfg.JWTSecret), orderControllers.GetUserOrders(db))
}
