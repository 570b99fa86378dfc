package api

import (
	"context"
	"net/http"

	apicontrollers "github.com/drujensen/todo/internal/api/controllers"
	_ "github.com/drujensen/todo/internal/api/docs"
	"github.com/drujensen/todo/internal/api/websocket"
	"github.com/drujensen/todo/internal/domain/services"
	"github.com/drujensen/todo/internal/impl/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title To-Do List API
// @version 1.0
// @description CRUD API for to-do tasks backed by MongoDB.
// @BasePath /

// Options controls the optional parts of the HTTP surface.
type Options struct {
	// CORSOrigins lists allowed browser origins; empty disables CORS handling.
	CORSOrigins []string
	// RateLimitRPS is the per-client request rate; zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	// Metrics enables request metrics and GET /metrics when set.
	Metrics *metrics.Metrics
	// Hub enables GET /ws when set.
	Hub *websocket.TaskHub
}

type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
}

func NewServer(taskService services.TaskService, opts Options, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)
	// Forwarding headers are client controlled; the peer address is the caller.
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if opts.Metrics != nil {
		e.Use(metricsMiddleware(opts.Metrics))
	}
	e.Use(requestLogger(logger))
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
		}))
	}
	if opts.RateLimitRPS > 0 {
		e.Use(rateLimiter(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	root := e.Group("")
	apicontrollers.NewHomeController().RegisterRoutes(root)
	apicontrollers.NewTaskController(logger, taskService).RegisterRoutes(root)

	if opts.Hub != nil {
		e.GET("/ws", opts.Hub.HandleWebSocket)
	}
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return &Server{echo: e, logger: logger}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown is called, after which it returns
// http.ErrServerClosed.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
