package reports

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/ratelimit"
)

// RegisterRoutes mounts the report endpoints for all three roles and
// returns the lifecycle service for the dashboard feature.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, depts DepartmentLookup, notifier Notifier, authenticate gin.HandlerFunc) *Service {
	repo := NewRepository(db)
	service := NewService(repo, depts, notifier)
	handler := NewHandler(service)

	// Report submission is rate limited per user over a rolling day.
	createLimiter := ratelimit.New(cfg.ReportRateLimit, 24*time.Hour)
	createLimiter.StartCleanup(time.Hour)
	limitCreate := ratelimit.UserBasedMiddleware(createLimiter)

	admin := router.Group("/admin/reports")
	admin.Use(authenticate, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("", handler.List)
		admin.GET("/search", handler.Search)
		admin.GET("/:id", handler.Get)
		admin.PATCH("/:id/status", handler.AdminUpdate)
	}

	officer := router.Group("/officer/reports")
	officer.Use(authenticate, auth.RequireRole(auth.RoleOfficer))
	{
		officer.POST("", limitCreate, handler.Create)
		officer.GET("", handler.List)
		officer.GET("/search", handler.Search)
		officer.GET("/:id", handler.Get)
		officer.PATCH("/:id/status", handler.ChangeStatus)
	}

	citizen := router.Group("/citizen/reports")
	citizen.Use(authenticate, auth.RequireRole(auth.RoleCitizen))
	{
		citizen.POST("", limitCreate, handler.Create)
		citizen.GET("", handler.List)
		citizen.GET("/:id", handler.Get)
	}

	return service
}
