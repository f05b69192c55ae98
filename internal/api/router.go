package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/firstapp/accounts/docs"
	"github.com/firstapp/accounts/internal/api/handler"
	"github.com/firstapp/accounts/internal/api/metrics"
	"github.com/firstapp/accounts/internal/api/middleware"
	"github.com/firstapp/accounts/internal/core/ports"
	"github.com/firstapp/accounts/internal/core/service"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Registration ports.RegistrationService
	Admin        ports.AdminService
	Flashes      ports.FlashStore
	// Checks are pinged by the readiness probe, keyed by reported name.
	Checks map[string]handler.Pinger

	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	// Registry receives the HTTP and service metrics served on /metrics.
	// A fresh registry is created when nil.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator(service.NewValidate())

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	for _, c := range metrics.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "accounts",
		Registerer: reg,
	}))

	// --- Handlers ---
	flashes := handler.NewFlashes(deps.Flashes, deps.CookieSecure, deps.Log)
	userHandler := handler.NewUserHandler(deps.Registration, flashes, deps.Log)
	adminHandler := handler.NewAdminHandler(deps.Admin, flashes, handler.SessionCookie{
		Secure: deps.CookieSecure,
		TTL:    deps.TokenTTL,
	}, deps.Log)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	// --- Registration form ---
	e.GET("/users/create/", userHandler.ShowCreateForm)
	e.POST("/users/create/", userHandler.CreateUser)

	// --- Admin area ---
	e.GET(handler.LoginPath, adminHandler.LoginForm)
	e.POST(handler.LoginPath, adminHandler.Login)
	e.POST("/admin/logout/", adminHandler.Logout)

	staff := e.Group("/admin",
		middleware.Auth(middleware.AuthConfig{Secret: deps.JWTSecret, LoginPath: handler.LoginPath}),
		middleware.RequireStaff(),
	)
	staff.GET("/users/", adminHandler.ListUsers)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
