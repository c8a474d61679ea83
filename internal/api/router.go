package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/secondbrain/bookmarks/docs"
	"github.com/secondbrain/bookmarks/internal/api/handler"
	"github.com/secondbrain/bookmarks/internal/api/middleware"
	"github.com/secondbrain/bookmarks/internal/core/ports"
	"github.com/secondbrain/bookmarks/internal/infrastructure/http/handlers"
)

// Services are the collaborators the routes are bound to.
type Services struct {
	Auth    ports.AuthService
	Content ports.ContentService
	Tokens  middleware.TokenParser

	// Dependencies are pinged by the readiness probe.
	Dependencies []handlers.Dependency
}

type Options struct {
	Logger       zerolog.Logger
	AllowOrigins []string

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bookmarks",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
		DoNotUseRequestPathFor404: true,
	}))

	authHandler := handler.NewAuthHandler(svc.Auth)
	contentHandler := handler.NewContentHandler(svc.Content)
	requireAuth := middleware.Auth(svc.Tokens)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "bookmarks api")
	})

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup, middleware.ValidateBody[handler.SignupRequest]())
	auth.POST("/login", authHandler.Login, middleware.ValidateBody[handler.LoginRequest]())

	// --- Content routes ---
	content := e.Group("/content")
	content.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "content api")
	})
	content.POST("/create", contentHandler.Create, requireAuth, middleware.ValidateBody[handler.ContentRequest]())
	content.PUT("/edit/:id", contentHandler.Edit, requireAuth, middleware.ValidateBody[handler.ContentRequest]())
	content.DELETE("/delete/:id", contentHandler.Delete, requireAuth)
	content.GET("/my-posts", contentHandler.MyPosts, requireAuth)
	content.GET("/type/:type", contentHandler.ByType)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Logger, svc.Dependencies...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
