package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"storefront-banners/internal/core/config"
	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/core/metrics"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "storefront-banners/docs/swagger"
)

// Pinger is a dependency reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig

	mu     sync.RWMutex
	checks map[string]Pinger
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig, m *metrics.Metrics) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "storefront-banners",
		BodyLimit:             8 << 20,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    "X-Ray-ID",
		Generator: uuid.NewString,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	s := &Server{
		App:    app,
		cfg:    cfg,
		checks: make(map[string]Pinger),
	}

	if m != nil {
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
	}

	app.Get("/health", s.health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	return s
}

// AddHealthCheck registers a dependency reported by /health.
func (s *Server) AddHealthCheck(name string, p Pinger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checks[name] = p
}

// health handles GET /health.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (s *Server) health(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(s.checks))}
	status := http.StatusOK

	for name, p := range s.checks {
		if err := p.Ping(c.UserContext()); err != nil {
			logger.Get().Warn("Health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	return c.Status(status).JSON(resp)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
