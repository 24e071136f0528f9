package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianhq/user-directory/internal/api/metrics"
)

// RBAC enforces role-based access control. It must run after Auth, which
// populates the role in the request context. With no required roles every
// authenticated request passes; a missing or empty role is a denial, not a
// crash.
func RBAC(requiredRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			role, _ := c.Get(RoleKey).(string)
			if role == "" {
				metrics.AuthDeniedTotal.WithLabelValues("missing_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			if _, ok := allowed[role]; !ok {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden_role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
