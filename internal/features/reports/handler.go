package reports

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary File a new crime report
// @Description Files a report for the authenticated user. Officers always file into their own department.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report payload"
// @Success 201 {object} response.SuccessResponse{data=CrimeReport}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /citizen/reports [post]
func (h *Handler) Create(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.service.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, report)
}

// List godoc
// @Summary List reports visible to the caller
// @Description Admins see all reports, officers their department's, citizens their own.
// @Tags reports
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by incident type"
// @Success 200 {object} response.PaginatedResponse{data=[]CrimeReport}
// @Security BearerAuth
// @Router /citizen/reports [get]
func (h *Handler) List(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	if query.Status != "" && !IsValidStatus(query.Status) {
		response.BadRequest(c, "Unknown status filter", "INVALID_STATUS")
		return
	}
	if query.Type != "" && !IsValidIncidentType(query.Type) {
		response.BadRequest(c, "Unknown incident type filter", "INVALID_INCIDENT_TYPE")
		return
	}

	filter := h.service.ScopeFor(user)
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.Type != "" {
		filter["incidentType"] = query.Type
	}

	reports, total, err := h.service.Repository().List(c.Request.Context(), filter, query.Page, query.Limit)
	if err != nil {
		response.DatabaseError(c, "Failed to load reports")
		return
	}

	response.Paginated(c, reports, total, query.Limit, query.Page)
}

// Get godoc
// @Summary Get a single report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse{data=CrimeReport}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /citizen/reports/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	report, err := h.service.GetForActor(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, report)
}

// ChangeStatus godoc
// @Summary Change a report's status
// @Description Admins may change any report, officers only their department's cases.
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body ChangeStatusRequest true "New status"
// @Success 200 {object} response.SuccessResponse{data=CrimeReport}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /officer/reports/{id}/status [patch]
func (h *Handler) ChangeStatus(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.service.ChangeStatus(c.Request.Context(), user, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, report)
}

// AdminUpdate godoc
// @Summary Update a report's status and/or department
// @Description A single admin endpoint that can change the status, reassign the department, or both.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body AdminUpdateRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse{data=CrimeReport}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/{id}/status [patch]
func (h *Handler) AdminUpdate(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if req.Status == "" && req.DepartmentID == "" {
		response.BadRequest(c, "Nothing to update", "EMPTY_UPDATE")
		return
	}

	ctx := c.Request.Context()
	var report *CrimeReport

	if req.Status != "" {
		report, err = h.service.ChangeStatus(ctx, user, id, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	if req.DepartmentID != "" {
		deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			response.BadRequest(c, "Invalid department ID", "INVALID_ID")
			return
		}
		report, err = h.service.ReassignDepartment(ctx, user, id, deptID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	response.Success(c, report)
}

// Search godoc
// @Summary Search reports
// @Description Matches the query against report codes exactly, or titles and locations as a substring, within the caller's scope.
// @Tags reports
// @Produce json
// @Param q query string false "Report code or text"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by incident type"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse{data=[]CrimeReport}
// @Security BearerAuth
// @Router /officer/reports/search [get]
func (h *Handler) Search(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.AuthenticationError(c, "Authentication required")
		return
	}

	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	if query.Status != "" && !IsValidStatus(query.Status) {
		response.BadRequest(c, "Unknown status filter", "INVALID_STATUS")
		return
	}
	if query.Type != "" && !IsValidIncidentType(query.Type) {
		response.BadRequest(c, "Unknown incident type filter", "INVALID_INCIDENT_TYPE")
		return
	}

	scope := h.service.ScopeFor(user)
	reports, total, err := h.service.Repository().Search(c.Request.Context(), scope, query.Q, query.Status, query.Type, query.Page, query.Limit)
	if err != nil {
		response.DatabaseError(c, "Failed to search reports")
		return
	}

	response.Paginated(c, reports, total, query.Limit, query.Page)
}

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.AuthorizationError(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrDuplicate):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
