package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/config"
	"github.com/proforma-service/internal/delivery/http/handler"
	"github.com/proforma-service/internal/delivery/http/middleware"
	apperrors "github.com/proforma-service/internal/pkg/errors"
	"github.com/proforma-service/internal/pkg/utils"

	_ "github.com/proforma-service/docs"
)

// bodyLimit - large enough for the maximum site batch
const bodyLimit = 32 << 20

// Server - HTTP server on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	feasibilityHandler *handler.FeasibilityHandler
	referenceHandler   *handler.ReferenceHandler
	runHandler         *handler.RunHandler
	healthHandler      *handler.HealthHandler
}

// NewServer - creates the server; runHandler may be nil when no stream is configured
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	feasibilityHandler *handler.FeasibilityHandler,
	referenceHandler *handler.ReferenceHandler,
	runHandler *handler.RunHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "ProForma Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                app,
		config:             cfg,
		logger:             logger,
		feasibilityHandler: feasibilityHandler,
		referenceHandler:   referenceHandler,
		runHandler:         runHandler,
		healthHandler:      healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Feasibility
	api.Post("/feasibility", s.feasibilityHandler.LookupForms)
	api.Post("/feasibility/:form", s.feasibilityHandler.Lookup)

	// Reference tables
	api.Get("/reference/:form/:parking", s.referenceHandler.GetReference)
	api.Get("/reference/:form/:parking/break-even", s.referenceHandler.GetBreakEven)
	api.Get("/config", s.referenceHandler.GetConfig)

	if s.runHandler != nil {
		api.Post("/runs", s.runHandler.StartRun)
		api.Get("/runs/:id/results", s.runHandler.GetResults)
	}
}

// App - the underlying Fiber app, for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - starts listening
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders Fiber errors (404 routes, body limit) in the API error shape
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		appErr := apperrors.New(codeName(code), err.Error(), code)
		return utils.SendError(c, appErr)
	}
}

func codeName(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	}
	return "INVALID_REQUEST"
}
