package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/dashboard"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
	"github.com/crimewatch/crimewatch-api/internal/features/media"
	"github.com/crimewatch/crimewatch-api/internal/features/notifications"
	"github.com/crimewatch/crimewatch-api/internal/features/officers"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
)

// SetupRoutes wires every feature under /api/v1. Features hand back the
// repositories and services their siblings depend on, so the wiring
// order follows the dependency order: auth first, then departments and
// officers, then notifications and reports, and the dashboard on top.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api/v1")

	authRepo, authenticate := auth.RegisterRoutes(api, db, cfg)
	deptRepo := departments.RegisterRoutes(api, db, authenticate)
	officersRepo := officers.RegisterRoutes(api, db, authRepo, deptRepo, authenticate)
	notifService := notifications.RegisterRoutes(api, db, cfg, officersRepo, authenticate)
	reportService := reports.RegisterRoutes(api, db, cfg, deptRepo, notifService, authenticate)
	dashboard.RegisterRoutes(api, reportService, deptRepo, officersRepo, authRepo, notifService.Repository(), authenticate)
	media.RegisterRoutes(api, cfg)
}
