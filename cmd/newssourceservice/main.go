package main

import (
    "context"
    "fmt"
    "os"

    "github.com/bilgisen/newz/internal/api"
    "github.com/bilgisen/newz/internal/config"
    "github.com/bilgisen/newz/internal/logger"
    "github.com/bilgisen/newz/internal/models"
    "github.com/bilgisen/newz/internal/repository"
    "github.com/bilgisen/newz/internal/server"
    "github.com/bilgisen/newz/internal/service"
    "github.com/bilgisen/newz/internal/storage"
)

func main() {
    cfg, err := config.Load(config.ServiceNewsSource)
    if err != nil {
        fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
        os.Exit(1)
    }

    if err := logger.Init(logger.Config{
        Level:   cfg.LogLevel,
        Output:  cfg.LogFile,
        Pretty:  cfg.LogPretty,
        Service: cfg.Service,
    }); err != nil {
        fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
    }

    log := logger.Get()
    log.Info().Str("store", cfg.StoreDriver).Msg("Starting news source service...")

    ctx := context.Background()

    backend, err := storage.Open(ctx, cfg)
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to open document store")
    }

    coll, err := storage.NewCollection[models.NewsSource](ctx, backend, cfg.Collection, repository.NewsSourceOwnerField)
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to open news source collection")
    }

    svc := service.NewNewsSourceService(repository.NewNewsSourceRepository(coll))

    app := api.NewNewsSourceApp(api.Options{
        Service:     cfg.Service,
        StoreDriver: backend.Driver(),
        Store:       backend,
        HTTPTimeout: cfg.HTTPTimeout,
    }, svc)

    err = server.Run(ctx, app, ":"+cfg.Port, cfg.ShutdownTimeout, func(ctx context.Context) {
        if err := backend.Close(ctx); err != nil {
            log.Error().Err(err).Msg("Error closing document store")
        }
    })
    if err != nil {
        log.Fatal().Err(err).Msg("Server error")
    }
}
