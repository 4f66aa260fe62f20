package api

import (
	"time"

	"github.com/bilgisen/newz/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Options configures the fiber app of either service
type Options struct {
	Service     string
	StoreDriver string
	Store       Pinger
	HTTPTimeout time.Duration
}

// NewNewsApp builds the News service app
func NewNewsApp(opts Options, svc NewsService) *fiber.App {
	h := NewNewsHandlers(svc)
	return newApp(opts, func(api fiber.Router) {
		h.Register(api.Group("/news"))
	})
}

// NewNewsSourceApp builds the News Source service app
func NewNewsSourceApp(opts Options, svc NewsSourceService) *fiber.App {
	h := NewNewsSourceHandlers(svc)
	return newApp(opts, func(api fiber.Router) {
		h.Register(api.Group("/newssource"))
	})
}

func newApp(opts Options, register func(api fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.Service,
		ReadTimeout:           opts.HTTPTimeout,
		WriteTimeout:          opts.HTTPTimeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	metrics := middleware.NewMetrics(opts.Service)

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.NewLogger())
	app.Use(metrics.Middleware())

	app.Get(middleware.MetricsPath, metrics.Handler())

	// API group with versioning
	api := app.Group("/api/v1")
	api.Get("/health", HealthCheck(opts.Service, opts.StoreDriver, opts.Store))
	register(api)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})

	return app
}
