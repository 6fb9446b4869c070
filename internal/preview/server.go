package preview

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// StatusPath is the route reporting the last build outcome.
const StatusPath = "/_status"

// Server serves the output root over HTTP.
type Server struct {
	echo   *echo.Echo
	status *Status
}

// NewServer serves files below root. Directory requests resolve to their
// index.html. When metrics is non-nil it is mounted at /metrics.
func NewServer(root string, status *Status, metrics http.Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Debug("Preview request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))
	// The site is rebuilt underneath the server; browsers must revalidate.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
			return next(c)
		}
	})

	s := &Server{echo: e, status: status}
	e.GET(StatusPath, s.handleStatus)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
	e.Static("/", root)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleStatus(c echo.Context) error {
	snap := s.status.Snapshot()
	code := http.StatusOK
	if !snap.OK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, snap)
}
