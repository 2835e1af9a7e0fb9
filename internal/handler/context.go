package handler

import (
	"github.com/labstack/echo/v4"

	"healthmon/internal/auth"
	"healthmon/internal/model"
)

// Context keys set by the user-resolution middleware.
const (
	ContextUserKey   = "currentUser"
	ContextClaimsKey = "authClaims"
)

// CurrentUser returns the authenticated user placed on the context by the
// middleware, or nil on unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// CurrentClaims returns the validated token claims from the context.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ContextClaimsKey).(*auth.Claims)
	return claims
}
