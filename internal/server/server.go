// Package server runs a fiber app until the process is signalled.
package server

import (
    "context"
    "errors"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/bilgisen/newz/internal/logger"
    "github.com/gofiber/fiber/v2"
)

// Run listens on addr and shuts the app down gracefully on SIGINT/SIGTERM or
// when ctx is cancelled. cleanup runs after the server has stopped.
func Run(ctx context.Context, app *fiber.App, addr string, shutdownTimeout time.Duration, cleanup func(context.Context)) error {
    log := logger.Get()

    ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
    defer stop()

    // Start server in a goroutine
    errCh := make(chan error, 1)
    go func() {
        log.Info().Str("addr", addr).Msg("Starting server")
        errCh <- app.Listen(addr)
    }()

    var listenErr error
    select {
    case listenErr = <-errCh:
        log.Error().Err(listenErr).Msg("Server error")
    case <-ctx.Done():
        log.Info().Msg("Shutting down server...")
    }

    // Create a deadline for graceful shutdown
    shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
    defer cancel()

    if err := app.ShutdownWithContext(shutdownCtx); err != nil {
        log.Error().Err(err).Msg("Server forced to shutdown")
    }

    if cleanup != nil {
        cleanup(shutdownCtx)
    }

    if listenErr != nil {
        return listenErr
    }
    if err := shutdownCtx.Err(); errors.Is(err, context.DeadlineExceeded) {
        return err
    }

    log.Info().Msg("Server exited properly")
    return nil
}
