package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shoply/shoply-api/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	SetupAuthRoutes(r, db, cfg)
	SetupUserRoutes(r, db, cfg)
	SetupCatalogRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg, logger)
}
