package departments

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
)

// RegisterRoutes registers department routes. Listing is open to any
// authenticated account so report forms can populate the department picker;
// mutations are admin only. Returns the repository for other features.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, authenticate gin.HandlerFunc) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	depts := router.Group("/departments")
	depts.Use(authenticate)
	{
		depts.GET("", handler.List)
		depts.GET("/:id", handler.Get)
	}

	admin := router.Group("/admin/departments")
	admin.Use(authenticate, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("", handler.ListWithCounts)
		admin.POST("", handler.Create)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}

	return repo
}
