package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meridianhq/user-directory/internal/api/handler"
	"github.com/meridianhq/user-directory/internal/api/middleware"
	"github.com/meridianhq/user-directory/internal/core/domain"
	"github.com/meridianhq/user-directory/internal/core/ports"
)

// RouterDeps carries everything the router needs to wire routes and probes.
type RouterDeps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenVerifier
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Each route carries a static RoutePolicy; the guard chain is derived from it
// at registration time, never looked up reflectively.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userdir"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)

	register := func(method, path string, h echo.HandlerFunc, policy middleware.RoutePolicy) {
		e.Add(method, path, h, middleware.Guards(deps.Tokens, policy)...)
	}

	// --- Auth routes ---
	register(http.MethodPost, "/auth/login", authHandler.Login, middleware.RoutePolicy{Public: true})
	register(http.MethodPost, "/auth/register", authHandler.Register, middleware.RoutePolicy{Public: true})
	register(http.MethodGet, "/auth/profile", authHandler.Profile, middleware.RoutePolicy{})

	// --- User directory routes ---
	register(http.MethodPost, "/users", userHandler.Create, middleware.RoutePolicy{})
	register(http.MethodGet, "/users", userHandler.List, middleware.RoutePolicy{Public: true})
	register(http.MethodGet, "/users/:id", userHandler.Get, middleware.RoutePolicy{Public: true})
	register(http.MethodPatch, "/users/:id", userHandler.Update, middleware.RoutePolicy{})
	register(http.MethodDelete, "/users/:id", userHandler.Delete, middleware.RoutePolicy{Roles: []string{domain.RoleAdmin}})

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
