package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/config"
	userControllers "github.com/shoply/shoply-api/controllers/user"
	"github.com/shoply/shoply-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers registration, login and the token smoke-test route.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.POST("/register", userControllers.Register(db))
	r.POST("/login", userControllers.Login(db, cfg))

	r.GET("/protected", middleware.RequireAuth(cfg.JWTSecret), userControllers.Protected(db))
}
