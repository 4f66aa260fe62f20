package middleware

import (
    "time"

    "github.com/bilgisen/newz/internal/logger"
    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/requestid"
    "github.com/rs/zerolog"
)

// LoggerConfig defines the config for the logger middleware
type LoggerConfig struct {
    // Skip defines a function to skip middleware.
    // Optional. Default: skips /metrics
    Next func(c *fiber.Ctx) bool

    // Logger is the zerolog logger instance to use.
    // If not provided, the default logger will be used.
    Logger *zerolog.Logger
}

// DefaultLoggerConfig is the default config
var DefaultLoggerConfig = LoggerConfig{
    Next: func(c *fiber.Ctx) bool {
        return c.Path() == MetricsPath
    },
}

// NewLogger logs one line per request with method, route, status, latency,
// ip and request id. 5xx responses are logged at error level, 4xx at warn.
func NewLogger(config ...LoggerConfig) fiber.Handler {
    cfg := DefaultLoggerConfig
    if len(config) > 0 {
        cfg = config[0]
        if cfg.Next == nil {
            cfg.Next = DefaultLoggerConfig.Next
        }
    }

    return func(c *fiber.Ctx) error {
        if cfg.Next != nil && cfg.Next(c) {
            return c.Next()
        }

        start := time.Now()
        err := c.Next()
        latency := time.Since(start)

        log := cfg.Logger
        if log == nil {
            log = logger.Get()
        }

        // The error handler has not run yet, so derive the final status here.
        status := c.Response().StatusCode()
        if err != nil {
            status = statusOf(err)
        }

        var event *zerolog.Event
        switch {
        case status >= fiber.StatusInternalServerError:
            event = log.Error()
        case status >= fiber.StatusBadRequest:
            event = log.Warn()
        default:
            event = log.Info()
        }

        event = event.
            Str("method", c.Method()).
            Str("path", c.Path()).
            Str("route", c.Route().Path).
            Int("status", status).
            Dur("latency", latency).
            Str("ip", c.IP())

        if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
            event = event.Str("request_id", rid)
        }
        if err != nil {
            event = event.Err(err)
        }

        event.Msg("request")
        return err
    }
}
