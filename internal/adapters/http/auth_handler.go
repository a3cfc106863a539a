package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.RegisterRequest true "Credentials"
// @Success 201 {object} ports.AuthResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 409 {object} ports.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, ports.ErrorResponse{Error: entities.ErrUsernameTaken.Error()})
		}
		h.logger.Error("Registration failed", "error", err, "username", req.Username)
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}

	h.logger.LogSecurityEvent("user_registered", resp.User.ID.String(), c.RealIP(), nil)
	return c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Authenticate with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ports.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrUnauthorized) || errors.Is(err, entities.ErrUserNotFound) {
			h.logger.LogSecurityEvent("login_failed", req.Username, c.RealIP(), nil)
			return c.JSON(http.StatusUnauthorized, ports.ErrorResponse{Error: "invalid credentials"})
		}
		h.logger.Error("Login failed", "error", err, "username", req.Username)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	h.logger.LogSecurityEvent("login_success", resp.User.ID.String(), c.RealIP(), nil)
	return c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ports.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req ports.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	resp, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		h.logger.LogSecurityEvent("refresh_rejected", "", c.RealIP(), nil)
		return c.JSON(http.StatusUnauthorized, ports.ErrorResponse{Error: "invalid refresh token"})
	}

	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Revoke all refresh tokens of the current user
// @Tags auth
// @Produce json
// @Success 200 {object} ports.MessageResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ports.ErrorResponse{Error: "unauthorized"})
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		h.logger.Error("Logout failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
	}

	h.logger.LogSecurityEvent("logout", userID.String(), c.RealIP(), nil)
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "logged out"})
}

// ValidateToken godoc
// @Summary Validate the presented access token
// @Tags auth
// @Produce json
// @Success 200 {object} ports.Claims
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /auth/validate [get]
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ports.ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, claims)
}
