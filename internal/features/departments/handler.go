package departments

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	"github.com/crimewatch/crimewatch-api/internal/pkg/validator"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create godoc
// @Summary Create a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDepartmentRequest true "Department data"
// @Success 201 {object} Department
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/departments [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if req.ContactNumber != "" && !validator.IsValidPhone(req.ContactNumber) {
		response.BadRequest(c, "Invalid contact number", "VALIDATION_FAILED")
		return
	}

	dept := &Department{
		Name:          req.Name,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	}

	if req.EstablishedDate != "" {
		established, err := time.Parse("2006-01-02", req.EstablishedDate)
		if err != nil {
			response.BadRequest(c, "Established date must be YYYY-MM-DD", "VALIDATION_FAILED")
			return
		}
		dept.EstablishedDate = &established
	}

	if err := h.repo.Create(c.Request.Context(), dept); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Department name already taken", "NAME_TAKEN")
			return
		}
		response.DatabaseError(c, "Failed to create department")
		return
	}

	response.Created(c, dept)
}

// List godoc
// @Summary List departments
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Department
// @Router /departments [get]
func (h *Handler) List(c *gin.Context) {
	depts, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, "Failed to list departments")
		return
	}
	response.Success(c, depts)
}

// ListWithCounts godoc
// @Summary List departments with officer headcount
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} DepartmentWithCount
// @Router /admin/departments [get]
func (h *Handler) ListWithCounts(c *gin.Context) {
	depts, err := h.repo.ListWithCounts(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, "Failed to list departments")
		return
	}
	response.Success(c, depts)
}

// Get godoc
// @Summary Get a department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {object} Department
// @Failure 404 {object} response.ErrorResponse
// @Router /departments/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	deptID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid department id", "INVALID_ID")
		return
	}

	dept, err := h.repo.FindByID(c.Request.Context(), deptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Department not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load department")
		return
	}

	response.Success(c, dept)
}

// Update godoc
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Param request body UpdateDepartmentRequest true "Department fields"
// @Success 200 {object} Department
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/departments/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	deptID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid department id", "INVALID_ID")
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.ContactNumber != "" {
		if !validator.IsValidPhone(req.ContactNumber) {
			response.BadRequest(c, "Invalid contact number", "VALIDATION_FAILED")
			return
		}
		updates["contactNumber"] = req.ContactNumber
	}
	if req.IsActive != nil {
		updates["isActive"] = *req.IsActive
	}

	if len(updates) == 0 {
		response.BadRequest(c, "No fields to update", "EMPTY_UPDATE")
		return
	}

	if err := h.repo.Update(c.Request.Context(), deptID, updates); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Department not found", "NOT_FOUND")
		case errors.Is(err, apperrors.ErrDuplicate):
			response.Conflict(c, "Department name already taken", "NAME_TAKEN")
		default:
			response.DatabaseError(c, "Failed to update department")
		}
		return
	}

	dept, err := h.repo.FindByID(c.Request.Context(), deptID)
	if err != nil {
		response.DatabaseError(c, "Failed to reload department")
		return
	}

	response.Success(c, dept)
}

// Delete godoc
// @Summary Delete a department
// @Description Deleting a department unassigns its officers and reports.
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/departments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	deptID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid department id", "INVALID_ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), deptID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Department not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to delete department")
		return
	}

	response.Success(c, gin.H{"message": "Department deleted"})
}
