package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/meridianhq/user-directory/internal/core/ports"
)

// RoutePolicy is the static access policy attached to a route at registration
// time. The zero value means "authenticated, any role".
type RoutePolicy struct {
	Public bool
	Roles  []string
}

// Guards turns a route policy into its middleware chain: nothing for public
// routes, token verification for private ones, plus a role check when the
// policy names required roles. Authentication always runs before
// authorization; a request that fails Auth never reaches RBAC.
func Guards(tokens ports.TokenVerifier, policy RoutePolicy) []echo.MiddlewareFunc {
	if policy.Public {
		return nil
	}
	chain := []echo.MiddlewareFunc{Auth(tokens)}
	if len(policy.Roles) > 0 {
		chain = append(chain, RBAC(policy.Roles...))
	}
	return chain
}
