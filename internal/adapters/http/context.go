package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// Context keys populated by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// UserIDFromContext extracts the authenticated user id set by the auth middleware
func UserIDFromContext(c echo.Context) (uuid.UUID, error) {
	raw, ok := c.Get(ContextKeyUserID).(string)
	if !ok {
		return uuid.Nil, entities.ErrUnauthorized
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, entities.ErrUnauthorized
	}

	return userID, nil
}

// ClaimsFromContext rebuilds the token claims set by the auth middleware
func ClaimsFromContext(c echo.Context) (*ports.Claims, error) {
	userID, ok := c.Get(ContextKeyUserID).(string)
	if !ok {
		return nil, entities.ErrUnauthorized
	}

	username, _ := c.Get(ContextKeyUsername).(string)

	return &ports.Claims{
		UserID:   userID,
		Username: username,
	}, nil
}
