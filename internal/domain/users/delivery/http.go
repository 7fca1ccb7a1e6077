package delivery

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/internal/domain/users"
	"github.com/martinmanurung/cinecheck/pkg/jwt"
	"github.com/martinmanurung/cinecheck/pkg/middleware"
	"github.com/martinmanurung/cinecheck/pkg/response"
)

type UserUsecase interface {
	Signup(ctx context.Context, payload users.SignupRequest) (*users.UserProfile, error)
	Login(ctx context.Context, payload users.LoginRequest) (*users.LoginResponse, error)
	GetProfile(ctx context.Context, email string) (*users.UserProfile, error)
	GetProfileByID(ctx context.Context, userID string) (*users.UserProfile, error)
	UpdateProfile(ctx context.Context, email string, payload users.UpdateProfileRequest) (*users.UserProfile, error)
}

type Handler struct {
	usecase UserUsecase
}

func NewHandler(usecase UserUsecase) *Handler {
	return &Handler{usecase: usecase}
}

func (h *Handler) Signup(c echo.Context) error {
	logger := middleware.GetLogger(c)

	var req users.SignupRequest
	if err := c.Bind(&req); err != nil {
		logger.Error().Err(err).Msg("Failed to bind request")
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		logger.Warn().Err(err).Msg("Validation failed")
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.Signup(c.Request().Context(), req)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to register user")
		return response.FromError(c, err)
	}

	logger.Info().Str("user_id", result.ID).Msg("User registered successfully")
	return response.Success(c, http.StatusCreated, "user_registered_successfully", result)
}

func (h *Handler) Login(c echo.Context) error {
	logger := middleware.GetLogger(c)

	var req users.LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.Login(c.Request().Context(), req)
	if err != nil {
		logger.Warn().Msg("Login failed")
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "login_successful", result)
}

// GET /api/v1/users/me (JWT)
func (h *Handler) GetMe(c echo.Context) error {
	userID, err := jwt.GetUserIDFromContext(c)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "unauthorized", "invalid token")
	}

	result, err := h.usecase.GetProfileByID(c.Request().Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// GET /api/v1/users/:email
func (h *Handler) GetProfile(c echo.Context) error {
	result, err := h.usecase.GetProfile(c.Request().Context(), c.Param("email"))
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// PUT /api/v1/users/:email
func (h *Handler) UpdateProfile(c echo.Context) error {
	var req users.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	result, err := h.usecase.UpdateProfile(c.Request().Context(), c.Param("email"), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, http.StatusOK, "profile_updated_successfully", result)
}
