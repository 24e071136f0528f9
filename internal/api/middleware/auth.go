package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianhq/user-directory/internal/api/metrics"
	"github.com/meridianhq/user-directory/internal/core/ports"
)

// Context keys set by Auth on success.
const (
	ClaimsKey  = "claims"
	RoleKey    = "role"
	EmailKey   = "email"
	SubjectKey = "sub"
)

// Auth validates the bearer token and injects the decoded claims into the
// request context. The authorization header must match exactly
// "Bearer <token>": case-sensitive scheme keyword, single space separator.
// Any other shape counts as no token at all.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c.Request().Header.Get("Authorization"))
			if token == "" {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			start := time.Now()
			claims, err := tokens.Verify(token)
			metrics.TokenVerifyDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				// expired and invalid are deliberately indistinguishable to the caller
				metrics.AuthDeniedTotal.WithLabelValues("bad_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ClaimsKey, claims)
			c.Set(RoleKey, claims.Role)
			c.Set(EmailKey, claims.Email)
			c.Set(SubjectKey, claims.Subject)

			return next(c)
		}
	}
}

func extractBearer(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
