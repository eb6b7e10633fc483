package dashboard

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
	"github.com/crimewatch/crimewatch-api/internal/features/notifications"
	"github.com/crimewatch/crimewatch-api/internal/features/officers"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
)

const recentLimit = 5

type Handler struct {
	reports       *reports.Service
	depts         *departments.Repository
	officers      *officers.Repository
	users         *auth.Repository
	notifications *notifications.Repository
}

func NewHandler(reportS *reports.Service, depts *departments.Repository, off *officers.Repository, users *auth.Repository, notifs *notifications.Repository) *Handler {
	return &Handler{
		reports:       reportS,
		depts:         depts,
		officers:      off,
		users:         users,
		notifications: notifs,
	}
}

// Admin godoc
// @Summary Admin dashboard statistics
// @Tags admin
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=AdminStats}
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *Handler) Admin(c *gin.Context) {
	ctx := c.Request.Context()
	scope := bson.M{}

	byStatus, err := h.reports.Repository().CountsByStatus(ctx, scope)
	if err != nil {
		response.DatabaseError(c, "Failed to load dashboard statistics")
		return
	}
	counts := statusCountsFrom(byStatus)

	deptCount, err := h.depts.Count(ctx)
	if err != nil {
		response.DatabaseError(c, "Failed to load dashboard statistics")
		return
	}
	officerCount, err := h.officers.Count(ctx)
	if err != nil {
		response.DatabaseError(c, "Failed to load dashboard statistics")
		return
	}
	citizenCount, err := h.users.CountByRole(ctx, auth.RoleCitizen)
	if err != nil {
		response.DatabaseError(c, "Failed to load dashboard statistics")
		return
	}
	recent, err := h.reports.Repository().Recent(ctx, scope, recentLimit)
	if err != nil {
		response.DatabaseError(c, "Failed to load dashboard statistics")
		return
	}

	response.Success(c, AdminStats{
		TotalReports:     totalOf(counts),
		ReportsByStatus:  counts,
		TotalDepartments: deptCount,
		TotalOfficers:    officerCount,
		TotalCitizens:    citizenCount,
		RecentReports:    recent,
	})
}

// Officer godoc
// @Summary Officer board statistics
// @Description Counts and recent cases scoped to the officer's department.
// @Tags officers
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=OfficerStats}
// @Security BearerAuth
// @Router /officer/board [get]
func (h *Handler) Officer(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}
	ctx := c.Request.Context()
	scope := h.reports.ScopeFor(user)

	byStatus, err := h.reports.Repository().CountsByStatus(ctx, scope)
	if err != nil {
		response.DatabaseError(c, "Failed to load board statistics")
		return
	}
	counts := statusCountsFrom(byStatus)

	unread, err := h.notifications.CountUnread(ctx, user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to load board statistics")
		return
	}
	recent, err := h.reports.Repository().Recent(ctx, scope, recentLimit)
	if err != nil {
		response.DatabaseError(c, "Failed to load board statistics")
		return
	}

	response.Success(c, OfficerStats{
		TotalReports:        totalOf(counts),
		ReportsByStatus:     counts,
		UnreadNotifications: unread,
		RecentReports:       recent,
	})
}

// Citizen godoc
// @Summary Citizen board statistics
// @Description Counts over the citizen's own reports.
// @Tags citizens
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=CitizenStats}
// @Security BearerAuth
// @Router /citizen/board [get]
func (h *Handler) Citizen(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}
	ctx := c.Request.Context()
	scope := h.reports.ScopeFor(user)

	byStatus, err := h.reports.Repository().CountsByStatus(ctx, scope)
	if err != nil {
		response.DatabaseError(c, "Failed to load board statistics")
		return
	}
	counts := statusCountsFrom(byStatus)

	unread, err := h.notifications.CountCitizenUnread(ctx, user.ID)
	if err != nil {
		response.DatabaseError(c, "Failed to load board statistics")
		return
	}
	recent, err := h.reports.Repository().Recent(ctx, scope, recentLimit)
	if err != nil {
		response.DatabaseError(c, "Failed to load board statistics")
		return
	}

	response.Success(c, CitizenStats{
		TotalReports:        totalOf(counts),
		ReportsByStatus:     counts,
		UnreadNotifications: unread,
		RecentReports:       recent,
	})
}
