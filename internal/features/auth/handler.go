package auth

// Swagger API metadata is defined globally in cmd/api/main.go

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/pkg/jwt"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
)

type Handler struct {
	repo   *Repository
	jwtCfg *jwt.Config
}

func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	jwtCfg := jwt.DefaultConfig(cfg.JWTSecret)
	if cfg.JWTExpireHours > 0 {
		jwtCfg.AccessExpiry = cfg.AccessExpiry()
	}

	return &Handler{
		repo:   repo,
		jwtCfg: jwtCfg,
	}
}

// Register godoc
// @Summary Register a citizen account
// @Description Register a new citizen account with email, password and name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to check existing account")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered", "EMAIL_TAKEN")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	// Self-registration always creates a citizen. Officer and admin
	// accounts are provisioned through the admin surface.
	user := &User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      RoleCitizen,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		response.Conflict(c, "Email or phone already registered", "EMAIL_TAKEN")
		return
	}

	token, err := jwt.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.jwtCfg)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Created(c, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary Login
// @Description Authenticate with email and password. The returned role
// @Description tells the client which dashboard to redirect to.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateLogin(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.DatabaseError(c, "Failed to look up account")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	if !user.IsActive {
		response.Forbidden(c, "Account is deactivated", "ACCOUNT_DEACTIVATED")
		return
	}

	token, err := jwt.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.jwtCfg)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	response.Success(c, AuthResponse{Token: token, User: user})
}

// Me godoc
// @Summary Get current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} User
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, CurrentUser(c))
}

// Logout godoc
// @Summary Logout
// @Description Tokens are stateless; the client discards the token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "Logged out"})
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} User
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/profile [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updates := bson.M{}
	if req.FirstName != "" {
		updates["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		updates["lastName"] = req.LastName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}

	if len(updates) == 0 {
		response.BadRequest(c, "No fields to update", "EMPTY_UPDATE")
		return
	}

	if err := h.repo.Update(c.Request.Context(), user.ID, updates); err != nil {
		response.DatabaseError(c, "Failed to update profile")
		return
	}

	updated, err := h.repo.FindByID(c.Request.Context(), user.ID.Hex())
	if err != nil {
		response.DatabaseError(c, "Failed to reload profile")
		return
	}

	response.Success(c, updated)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Password change"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/password [patch]
func (h *Handler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateChangePassword(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		response.Unauthorized(c, "Current password is incorrect", "INVALID_CREDENTIALS")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	if err := h.repo.Update(c.Request.Context(), user.ID, bson.M{"password": string(hashed)}); err != nil {
		response.DatabaseError(c, "Failed to update password")
		return
	}

	response.Success(c, gin.H{"message": "Password updated"})
}
