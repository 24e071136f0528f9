package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meridianhq/user-directory/internal/core/domain"
	"github.com/meridianhq/user-directory/internal/core/service"
)

func TestGuards_ChainLength(t *testing.T) {
	verifier := &stubVerifier{}

	if got := Guards(verifier, RoutePolicy{Public: true}); len(got) != 0 {
		t.Fatalf("public route: expected no guards, got %d", len(got))
	}
	if got := Guards(verifier, RoutePolicy{}); len(got) != 1 {
		t.Fatalf("private route: expected auth guard only, got %d", len(got))
	}
	if got := Guards(verifier, RoutePolicy{Roles: []string{domain.RoleAdmin}}); len(got) != 2 {
		t.Fatalf("role-restricted route: expected auth+rbac, got %d", len(got))
	}
}

// TestGuards_Composition exercises the full pipeline with real tokens:
// public bypass, authentication, then authorization in a fixed order.
func TestGuards_Composition(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/public", ok, Guards(tokens, RoutePolicy{Public: true})...)
	e.GET("/private", ok, Guards(tokens, RoutePolicy{})...)
	e.GET("/admin", ok, Guards(tokens, RoutePolicy{Roles: []string{domain.RoleAdmin}})...)

	userToken, err := tokens.Issue(domain.Claims{Subject: "user_1", Email: "u@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"public without header", "/public", "", http.StatusOK},
		{"private without header", "/private", "", http.StatusUnauthorized},
		{"private with valid token", "/private", "Bearer " + userToken, http.StatusOK},
		{"admin with wrong role", "/admin", "Bearer " + userToken, http.StatusForbidden},
		{"admin without header", "/admin", "", http.StatusUnauthorized},
		{"private with garbage token", "/private", "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
	}
}

func TestGuards_ExpiredTokenRejected(t *testing.T) {
	live := service.NewTokenService("secret", time.Hour)

	e := echo.New()
	e.GET("/private", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		Guards(live, RoutePolicy{})...)

	// Issued already expired: same secret, negative lifetime.
	expired, err := service.NewTokenService("secret", -time.Minute).Issue(domain.Claims{Subject: "user_1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}
