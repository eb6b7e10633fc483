package notifications

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/logger"
)

// RegisterRoutes registers the notification routes for both audiences and
// returns the fan-out service for the reports feature.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, officers OfficerDirectory, authenticate gin.HandlerFunc) *Service {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	var push PushSender
	if cfg.FirebaseServiceAccountPath != "" {
		sender, err := NewFCMSender(context.Background(), cfg.FirebaseServiceAccountPath)
		if err != nil {
			logger.Warn("push disabled, firebase init failed: %v", err)
		} else {
			push = sender
		}
	}

	service := NewService(repo, officers, push)

	officer := router.Group("/officer/notifications")
	officer.Use(authenticate, auth.RequireRole(auth.RoleOfficer))
	{
		officer.GET("", handler.ListOfficer)
		officer.GET("/unread-count", handler.OfficerUnreadCount)
		officer.PATCH("/:id/read", handler.OfficerMarkRead)
		officer.POST("/read-all", handler.OfficerMarkAllRead)
	}

	citizen := router.Group("/citizen/notifications")
	citizen.Use(authenticate, auth.RequireRole(auth.RoleCitizen))
	{
		citizen.GET("", handler.ListCitizen)
		citizen.GET("/unread-count", handler.CitizenUnreadCount)
		citizen.PATCH("/:id/read", handler.CitizenMarkRead)
		citizen.POST("/read-all", handler.CitizenMarkAllRead)
	}

	return service
}
