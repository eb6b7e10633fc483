package media

import (
	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-api/internal/pkg/cloudinary"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
)

type Handler struct {
	cloudinary *cloudinary.Service
}

func NewHandler(cld *cloudinary.Service) *Handler {
	return &Handler{
		cloudinary: cld,
	}
}

// UploadEvidence godoc
// @Summary Upload report evidence
// @Description Uploads one evidence file. kind selects validation and the Cloudinary resource type; the returned url and publicId go into the report payload.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Evidence file"
// @Param kind formData string true "image, video or audio"
// @Success 200 {object} response.SuccessResponse{data=cloudinary.UploadResult}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /media/evidence [post]
func (h *Handler) UploadEvidence(c *gin.Context) {
	if h.cloudinary == nil {
		response.ServiceUnavailable(c, "Media uploads are not configured", "MEDIA_DISABLED")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	kind := c.PostForm("kind")
	ctx := c.Request.Context()

	var result *cloudinary.UploadResult
	switch kind {
	case "image":
		if err := cloudinary.ValidateImageFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		result, err = h.cloudinary.UploadImage(ctx, file, header.Filename)
	case "video":
		if err := cloudinary.ValidateVideoFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		result, err = h.cloudinary.UploadVideo(ctx, file, header.Filename)
	case "audio":
		if err := cloudinary.ValidateAudioFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		result, err = h.cloudinary.UploadAudio(ctx, file, header.Filename)
	default:
		response.BadRequest(c, "kind must be image, video or audio", "INVALID_KIND")
		return
	}

	if err != nil {
		response.InternalServerError(c, "Failed to upload file", "UPLOAD_FAILED")
		return
	}

	response.Success(c, result)
}
