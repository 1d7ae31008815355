package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/logintest/login-api/docs"
	"github.com/logintest/login-api/internal/api/handler"
	"github.com/logintest/login-api/internal/api/middleware"
	"github.com/logintest/login-api/internal/core/ports"
)

const bodyLimit = "64K"

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"}
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	AuthService ports.AuthService
	Store       handler.Pinger
	StoreDriver string
	Log         zerolog.Logger
	CORSOrigins []string
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with every route registered at the
// root and again under /api.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	// Outside the request logger so it observes the rendered status.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "login",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.OpenCORS(origins, corsMethods, corsHeaders))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: corsMethods,
		AllowHeaders: corsHeaders,
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	authHandler := handler.NewAuthHandler(d.AuthService)
	healthHandler := handler.NewHealthHandler(d.Store, d.StoreDriver)

	register := func(g *echo.Group) {
		g.GET("/health", healthHandler.Liveness)
		g.GET("/health/ready", healthHandler.Readiness)
		g.POST("/login", authHandler.Login)
		g.POST("/register", authHandler.Register)
	}
	register(e.Group(""))
	register(e.Group("/api"))

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
