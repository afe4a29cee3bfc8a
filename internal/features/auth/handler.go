package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/safezone/internal/config"
	"github.com/xyz-asif/safezone/internal/pkg/jwt"
	"github.com/xyz-asif/safezone/internal/pkg/response"
	"github.com/xyz-asif/safezone/internal/pkg/validator"
	apperrors "github.com/xyz-asif/safezone/pkg/errors"
)

type Handler struct {
	repo *Repository
	cfg  *config.Config
}

func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, cfg: cfg}
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields", "INVALID_JSON")
		return
	}

	if !validator.IsValidName(req.Name) {
		response.BadRequest(c, "Invalid name", "INVALID_NAME")
		return
	}
	if !validator.IsValidEmail(req.Email) {
		response.BadRequest(c, "Invalid email", "INVALID_EMAIL")
		return
	}
	if !validator.IsValidPhone(req.Phone) {
		response.BadRequest(c, "Invalid phone number", "INVALID_PHONE")
		return
	}

	// Registration is restricted to women
	if strings.ToLower(req.Gender) != "female" {
		response.Forbidden(c, "Registration restricted to women only", "REGISTRATION_RESTRICTED")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password", "INTERNAL_ERROR")
		return
	}

	user := &User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hash),
		Gender:   "Female",
	}

	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "User already exists with this phone or email", "USER_EXISTS")
			return
		}
		response.DatabaseError(c, "Failed to create user")
		return
	}

	token, err := jwt.GenerateToken(user.ID.Hex(), user.Phone, jwt.DefaultConfig(h.cfg.JWTSecret))
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Created(c, AuthResponse{User: profileOf(user), Token: token})
}

// @Summary Log in with phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing credentials", "INVALID_JSON")
		return
	}

	user, err := h.repo.GetUserByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		response.DatabaseError(c, "Failed to look up user")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	token, err := jwt.GenerateToken(user.ID.Hex(), user.Phone, jwt.DefaultConfig(h.cfg.JWTSecret))
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Success(c, AuthResponse{User: profileOf(user), Token: token})
}

// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=UserProfile}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}
	response.Success(c, profileOf(user))
}
