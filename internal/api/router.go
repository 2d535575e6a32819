package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/trailmate/trailmate-api/internal/api/handler"
	"github.com/trailmate/trailmate-api/internal/api/middleware"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

const metricsSubsystem = "trailmate"

// Deps holds everything the router wires into handlers.
type Deps struct {
	Auth   ports.AuthService
	Tokens ports.TokenService
	// Posts has one service per post kind; each is mounted under its
	// schema's route.
	Posts []ports.PostService
	// Health names the dependency checks run by /health/ready.
	Health map[string]handler.DependencyCheck
	// AuthHeader overrides the header carrying the token.
	AuthHeader string
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: d.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	auth := middleware.Auth(d.Tokens, d.AuthHeader)
	api := e.Group("/api")

	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth", authHandler.Login)
	api.GET("/auth", authHandler.Me, auth)

	userHandler := handler.NewUserHandler(d.Auth)
	api.POST("/users", userHandler.Register)

	validator := handler.NewValidator()
	for _, svc := range d.Posts {
		g := api.Group("/"+svc.Schema().Route, auth)
		handler.NewPostHandler(svc, validator).Register(g)
	}

	return e
}

// requestLogger writes one access log entry per request through log.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
