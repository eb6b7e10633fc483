package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
	"github.com/crimewatch/crimewatch-api/internal/features/notifications"
	"github.com/crimewatch/crimewatch-api/internal/features/officers"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
)

// RegisterRoutes mounts the per-role dashboard endpoints.
func RegisterRoutes(router *gin.RouterGroup, reportS *reports.Service, depts *departments.Repository, off *officers.Repository, users *auth.Repository, notifs *notifications.Repository, authenticate gin.HandlerFunc) {
	handler := NewHandler(reportS, depts, off, users, notifs)

	router.GET("/admin/dashboard", authenticate, auth.RequireRole(auth.RoleAdmin), handler.Admin)
	router.GET("/officer/board", authenticate, auth.RequireRole(auth.RoleOfficer), handler.Officer)
	router.GET("/citizen/board", authenticate, auth.RequireRole(auth.RoleCitizen), handler.Citizen)
}
