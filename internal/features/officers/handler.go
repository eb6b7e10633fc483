package officers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
	"github.com/crimewatch/crimewatch-api/internal/pkg/pagination"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	"github.com/crimewatch/crimewatch-api/internal/pkg/validator"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type Handler struct {
	repo     *Repository
	authRepo *auth.Repository
	deptRepo *departments.Repository
}

func NewHandler(repo *Repository, authRepo *auth.Repository, deptRepo *departments.Repository) *Handler {
	return &Handler{
		repo:     repo,
		authRepo: authRepo,
		deptRepo: deptRepo,
	}
}

// Create godoc
// @Summary Provision an officer
// @Description Creates an officer account and its profile in one step.
// @Tags officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOfficerRequest true "Officer data"
// @Success 201 {object} OfficerDetail
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/officers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.BadgeNumber = strings.ToUpper(strings.TrimSpace(req.BadgeNumber))

	if !validator.IsValidEmail(req.Email) {
		response.BadRequest(c, "Invalid email address", "VALIDATION_FAILED")
		return
	}
	if !validator.IsStrongPassword(req.Password) {
		response.BadRequest(c, "Password must be at least 8 characters and contain upper case, lower case and a number", "VALIDATION_FAILED")
		return
	}
	if !validator.IsValidName(req.FirstName) || !validator.IsValidName(req.LastName) {
		response.BadRequest(c, "Invalid officer name", "VALIDATION_FAILED")
		return
	}
	if !validator.IsValidPhone(req.Phone) {
		response.BadRequest(c, "Invalid phone number", "VALIDATION_FAILED")
		return
	}
	if !validator.IsValidBadgeNumber(req.BadgeNumber) {
		response.BadRequest(c, "Invalid badge number", "VALIDATION_FAILED")
		return
	}
	if !IsValidRank(req.Rank) {
		response.BadRequest(c, "Invalid rank", "INVALID_RANK")
		return
	}

	deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
	if err != nil {
		response.BadRequest(c, "Invalid department id", "INVALID_ID")
		return
	}
	if _, err := h.deptRepo.FindByID(c.Request.Context(), deptID); err != nil {
		response.BadRequest(c, "Department not found", "DEPARTMENT_NOT_FOUND")
		return
	}

	existing, err := h.authRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to check existing account")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered", "EMAIL_TAKEN")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	user := &auth.User{
		Email:        req.Email,
		Password:     string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         auth.RoleOfficer,
		DepartmentID: &deptID,
	}
	if err := h.authRepo.Create(c.Request.Context(), user); err != nil {
		response.Conflict(c, "Email or phone already registered", "EMAIL_TAKEN")
		return
	}

	officer := &Officer{
		UserID:       user.ID,
		BadgeNumber:  req.BadgeNumber,
		Rank:         req.Rank,
		DepartmentID: &deptID,
		OnDuty:       true,
	}
	if err := h.repo.Create(c.Request.Context(), officer); err != nil {
		// roll the account back so we do not leave an officer login
		// without a profile
		_ = h.authRepo.Delete(c.Request.Context(), user.ID)

		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Badge number already in use", "BADGE_TAKEN")
			return
		}
		response.DatabaseError(c, "Failed to create officer profile")
		return
	}

	response.Created(c, OfficerDetail{Officer: *officer, User: user})
}

// List godoc
// @Summary List officers
// @Tags officers
// @Produce json
// @Security BearerAuth
// @Param departmentId query string false "Filter by department"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse{data=[]OfficerDetail}
// @Router /admin/officers [get]
func (h *Handler) List(c *gin.Context) {
	var deptFilter *primitive.ObjectID
	if deptStr := c.Query("departmentId"); deptStr != "" {
		deptID, err := primitive.ObjectIDFromHex(deptStr)
		if err != nil {
			response.BadRequest(c, "Invalid department id", "INVALID_ID")
			return
		}
		deptFilter = &deptID
	}

	pageReq := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	offset := (pageReq.Page - 1) * pageReq.Limit

	officers, total, err := h.repo.List(c.Request.Context(), deptFilter, offset, pageReq.Limit)
	if err != nil {
		response.DatabaseError(c, "Failed to list officers")
		return
	}

	response.Paginated(c, officers, total, pageReq.Limit, pageReq.Page)
}

// Get godoc
// @Summary Get an officer
// @Tags officers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Officer ID"
// @Success 200 {object} OfficerDetail
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/officers/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	officerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid officer id", "INVALID_ID")
		return
	}

	officer, err := h.repo.FindByID(c.Request.Context(), officerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Officer not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load officer")
		return
	}

	user, err := h.authRepo.FindByID(c.Request.Context(), officer.UserID.Hex())
	if err != nil {
		user = nil
	}

	response.Success(c, OfficerDetail{Officer: *officer, User: user})
}

// Update godoc
// @Summary Update an officer profile
// @Description Changing the department also moves the linked account.
// @Tags officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Officer ID"
// @Param request body UpdateOfficerRequest true "Officer fields"
// @Success 200 {object} Officer
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/officers/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	officerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid officer id", "INVALID_ID")
		return
	}

	var req UpdateOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	officer, err := h.repo.FindByID(c.Request.Context(), officerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Officer not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load officer")
		return
	}

	updates := bson.M{}
	if req.BadgeNumber != "" {
		badge := strings.ToUpper(strings.TrimSpace(req.BadgeNumber))
		if !validator.IsValidBadgeNumber(badge) {
			response.BadRequest(c, "Invalid badge number", "VALIDATION_FAILED")
			return
		}
		updates["badgeNumber"] = badge
	}
	if req.Rank != "" {
		if !IsValidRank(req.Rank) {
			response.BadRequest(c, "Invalid rank", "INVALID_RANK")
			return
		}
		updates["rank"] = req.Rank
	}

	var newDept *primitive.ObjectID
	if req.DepartmentID != "" {
		deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			response.BadRequest(c, "Invalid department id", "INVALID_ID")
			return
		}
		if _, err := h.deptRepo.FindByID(c.Request.Context(), deptID); err != nil {
			response.BadRequest(c, "Department not found", "DEPARTMENT_NOT_FOUND")
			return
		}
		newDept = &deptID
		updates["departmentId"] = deptID
	}
	if req.OnDuty != nil {
		updates["onDuty"] = *req.OnDuty
	}

	if len(updates) == 0 {
		response.BadRequest(c, "No fields to update", "EMPTY_UPDATE")
		return
	}

	if err := h.repo.Update(c.Request.Context(), officerID, updates); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Badge number already in use", "BADGE_TAKEN")
			return
		}
		response.DatabaseError(c, "Failed to update officer")
		return
	}

	// keep the denormalized department on the account in sync
	if newDept != nil {
		if err := h.authRepo.SetDepartment(c.Request.Context(), officer.UserID, newDept); err != nil {
			response.DatabaseError(c, "Failed to update officer account")
			return
		}
	}

	updated, err := h.repo.FindByID(c.Request.Context(), officerID)
	if err != nil {
		response.DatabaseError(c, "Failed to reload officer")
		return
	}

	response.Success(c, updated)
}

// Delete godoc
// @Summary Remove an officer
// @Description Removes the officer profile and its login account.
// @Tags officers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Officer ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/officers/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	officerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid officer id", "INVALID_ID")
		return
	}

	officer, err := h.repo.FindByID(c.Request.Context(), officerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Officer not found", "NOT_FOUND")
			return
		}
		response.DatabaseError(c, "Failed to load officer")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), officerID); err != nil {
		response.DatabaseError(c, "Failed to delete officer")
		return
	}

	if err := h.authRepo.Delete(c.Request.Context(), officer.UserID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		response.DatabaseError(c, "Failed to delete officer account")
		return
	}

	// Their reports become anonymous and their notification rows go with
	// them; otherwise fan-out would keep addressing a dead account.
	if err := h.repo.ScrubUserData(c.Request.Context(), officer.UserID); err != nil {
		response.DatabaseError(c, "Failed to detach officer data")
		return
	}

	response.Success(c, gin.H{"message": "Officer removed"})
}
