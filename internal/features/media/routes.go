package media

import (
	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/middleware"
	"github.com/crimewatch/crimewatch-api/internal/pkg/cloudinary"
	"github.com/crimewatch/crimewatch-api/internal/pkg/logger"
)

// RegisterRoutes mounts the evidence upload endpoint. Uploads only need
// the caller's token identity, not the account record, so the lighter
// claims-only guard is enough here. When the Cloudinary credentials are
// missing the endpoint stays mounted and answers 503, so the rest of the
// API keeps working.
func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config) {
	var cld *cloudinary.Service
	if cfg.CloudinaryCloudName != "" {
		var err error
		cld, err = cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "evidence")
		if err != nil {
			logger.Warn("Cloudinary init failed, media uploads disabled: %v", err)
			cld = nil
		}
	} else {
		logger.Warn("Cloudinary credentials not set, media uploads disabled")
	}

	handler := NewHandler(cld)

	media := router.Group("/media")
	media.Use(middleware.Auth(cfg.JWTSecret))
	{
		media.POST("/evidence", handler.UploadEvidence)
	}
}
