package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
)

// RegisterRoutes registers the auth routes and returns the repository and
// authentication middleware so other features can reuse them.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) (*Repository, gin.HandlerFunc) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)
	authenticate := Authenticate(repo, cfg)

	auth := router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/logout", authenticate, handler.Logout)
		auth.GET("/me", authenticate, handler.Me)
		auth.PATCH("/profile", authenticate, handler.UpdateProfile)
		auth.PATCH("/password", authenticate, handler.ChangePassword)
	}

	return repo, authenticate
}
