package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"minifacebook/internal/middleware"
	"minifacebook/internal/pkg/response"
	"minifacebook/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/me", h.GetMe)
}

// Register creates an account and returns a session token.
// @Summary		Register
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"username, email, password, full_name"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Validation error or username/email taken"
// @Router		/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data", errs)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			response.Error(c, http.StatusBadRequest, "USER_EXISTS", "Username or email already exists")
			return
		}
		middleware.InternalError(c, err, "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login accepts a username or an email together with the password.
// @Summary		Login
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"username (or email), password"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{} "Wrong credentials"
// @Router		/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required", errs)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username or password is incorrect")
			return
		}
		middleware.InternalError(c, err, "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// GetMe returns the profile behind the bearer token.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		middleware.InternalError(c, err, "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Public()})
}
