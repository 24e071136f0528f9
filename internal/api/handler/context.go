package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianhq/user-directory/internal/api/middleware"
	"github.com/meridianhq/user-directory/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Their
// presence proves the guard ran; a handler registered behind the guard that
// finds none rejects with 401 rather than proceeding unauthenticated.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
