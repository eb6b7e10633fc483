package officers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
)

// RegisterRoutes registers the admin officer-management routes and returns
// the repository for other features.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, authRepo *auth.Repository, deptRepo *departments.Repository, authenticate gin.HandlerFunc) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo, authRepo, deptRepo)

	admin := router.Group("/admin/officers")
	admin.Use(authenticate, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("", handler.Create)
		admin.GET("", handler.List)
		admin.GET("/:id", handler.Get)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}

	return repo
}
