package notifications

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListOfficer godoc
// @Summary List officer notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Param unreadOnly query bool false "Only show unread"
// @Success 200 {object} response.PaginatedResponse
// @Router /officer/notifications [get]
func (h *Handler) ListOfficer(c *gin.Context) {
	user := auth.CurrentUser(c)

	var query NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	items, total, err := h.repo.GetForOfficer(c.Request.Context(), user.ID, query.UnreadOnly, query.Page, query.Limit)
	if err != nil {
		response.DatabaseError(c, "Failed to fetch notifications")
		return
	}

	response.Paginated(c, items, total, query.Limit, query.Page)
}

// OfficerUnreadCount godoc
// @Summary Unread officer notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountResponse
// @Router /officer/notifications/unread-count [get]
func (h *Handler) OfficerUnreadCount(c *gin.Context) {
	user := auth.CurrentUser(c)

	count, err := h.repo.CountUnread(c.Request.Context(), user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to count notifications")
		return
	}

	response.Success(c, UnreadCountResponse{UnreadCount: count})
}

// OfficerMarkRead godoc
// @Summary Mark an officer notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} MarkReadResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /officer/notifications/{id}/read [patch]
func (h *Handler) OfficerMarkRead(c *gin.Context) {
	user := auth.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification id", "INVALID_ID")
		return
	}

	n, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Notification not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load notification")
		return
	}

	if n.OfficerID != user.ID {
		response.Forbidden(c, "Cannot mark others' notifications", "FORBIDDEN")
		return
	}

	if err := h.repo.MarkAsRead(c.Request.Context(), id); err != nil {
		response.DatabaseError(c, "Failed to mark as read")
		return
	}

	response.Success(c, MarkReadResponse{ID: id, IsRead: true})
}

// OfficerMarkAllRead godoc
// @Summary Mark all officer notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MarkAllReadResponse
// @Router /officer/notifications/read-all [post]
func (h *Handler) OfficerMarkAllRead(c *gin.Context) {
	user := auth.CurrentUser(c)

	count, err := h.repo.MarkAllAsRead(c.Request.Context(), user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to mark all as read")
		return
	}

	response.Success(c, MarkAllReadResponse{MarkedCount: count})
}

// ListCitizen godoc
// @Summary List citizen notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Param unreadOnly query bool false "Only show unread"
// @Success 200 {object} response.PaginatedResponse
// @Router /citizen/notifications [get]
func (h *Handler) ListCitizen(c *gin.Context) {
	user := auth.CurrentUser(c)

	var query NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	items, total, err := h.repo.GetForCitizen(c.Request.Context(), user.ID, query.UnreadOnly, query.Page, query.Limit)
	if err != nil {
		response.DatabaseError(c, "Failed to fetch notifications")
		return
	}

	response.Paginated(c, items, total, query.Limit, query.Page)
}

// CitizenUnreadCount godoc
// @Summary Unread citizen notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountResponse
// @Router /citizen/notifications/unread-count [get]
func (h *Handler) CitizenUnreadCount(c *gin.Context) {
	user := auth.CurrentUser(c)

	count, err := h.repo.CountCitizenUnread(c.Request.Context(), user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to count notifications")
		return
	}

	response.Success(c, UnreadCountResponse{UnreadCount: count})
}

// CitizenMarkRead godoc
// @Summary Mark a citizen notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} MarkReadResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /citizen/notifications/{id}/read [patch]
func (h *Handler) CitizenMarkRead(c *gin.Context) {
	user := auth.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification id", "INVALID_ID")
		return
	}

	n, err := h.repo.GetCitizenByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Notification not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load notification")
		return
	}

	if n.UserID != user.ID {
		response.Forbidden(c, "Cannot mark others' notifications", "FORBIDDEN")
		return
	}

	if err := h.repo.MarkCitizenAsRead(c.Request.Context(), id); err != nil {
		response.DatabaseError(c, "Failed to mark as read")
		return
	}

	response.Success(c, MarkReadResponse{ID: id, IsRead: true})
}

// CitizenMarkAllRead godoc
// @Summary Mark all citizen notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MarkAllReadResponse
// @Router /citizen/notifications/read-all [post]
func (h *Handler) CitizenMarkAllRead(c *gin.Context) {
	user := auth.CurrentUser(c)

	count, err := h.repo.MarkAllCitizenAsRead(c.Request.Context(), user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to mark all as read")
		return
	}

	response.Success(c, MarkAllReadResponse{MarkedCount: count})
}
