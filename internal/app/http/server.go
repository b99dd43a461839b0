package httpEngine

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"portal-server/config"
)

// Server wraps the echo engine.
type Server struct {
	e      *echo.Echo
	cfg    *config.Config
	logger *zap.Logger
}

func requestLoggerConfig(logger *zap.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		HandleError: true,

		LogLatency:       true,
		LogRemoteIP:      true,
		LogHost:          true,
		LogMethod:        true,
		LogURI:           true,
		LogURIPath:       true,
		LogRoutePath:     true,
		LogRequestID:     true,
		LogUserAgent:     true,
		LogStatus:        true,
		LogError:         true,
		LogContentLength: true,
		LogResponseSize:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("remote_ip", v.RemoteIP),
				zap.String("host", v.Host),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("path", v.URIPath),
				zap.String("route", v.RoutePath),
				zap.String("user_agent", v.UserAgent),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.Int64("response_size", v.ResponseSize),
				zap.String("content_length", v.ContentLength),
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				logger.Error("request completed with error", fields...)
				return nil
			}

			logger.Info("request completed", fields...)
			return nil
		},
	}
}

// NewServer instantiates echo, installs middleware and registers routes.
func NewServer(cfg *config.Config, deps *Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()

	allowOrigins := cfg.Cors.AllowedOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowOrigins,
		AllowCredentials: cfg.Cors.AllowCredentials,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(cfg.Logger)))
	e.Use(middleware.Recover())

	RegisterRoutes(e, deps)

	return &Server{e: e, cfg: cfg, logger: cfg.Logger}
}

// Start runs the echo server on the configured HTTP port. Errors are
// returned rather than fatal-logged so main can shut down gracefully.
func (s *Server) Start() error {
	port := s.cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	s.logger.Info("starting HTTP server", zap.String("port", port))
	s.e.Server.ReadHeaderTimeout = 10 * time.Second
	return s.e.Start(":" + port)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
