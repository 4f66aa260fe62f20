package main

import (
    "context"
    "fmt"
    "os"

    "github.com/bilgisen/newz/internal/api"
    "github.com/bilgisen/newz/internal/archive"
    "github.com/bilgisen/newz/internal/client"
    "github.com/bilgisen/newz/internal/config"
    "github.com/bilgisen/newz/internal/logger"
    "github.com/bilgisen/newz/internal/models"
    "github.com/bilgisen/newz/internal/repository"
    "github.com/bilgisen/newz/internal/server"
    "github.com/bilgisen/newz/internal/service"
    "github.com/bilgisen/newz/internal/storage"
)

func main() {
    // Load and validate configuration
    cfg, err := config.Load(config.ServiceNews)
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
    log.Info().Str("store", cfg.StoreDriver).Msg("Starting news service...")

    ctx := context.Background()

    backend, err := storage.Open(ctx, cfg)
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to open document store")
    }

    coll, err := storage.NewCollection[models.News](ctx, backend, cfg.Collection, repository.NewsOwnerField)
    if err != nil {
        log.Fatal().Err(err).Msg("Failed to open news collection")
    }

    var opts []service.NewsOption
    if cfg.NewsSourceServiceURL != "" {
        log.Info().Str("url", cfg.NewsSourceServiceURL).Msg("News source lookup enabled")
        opts = append(opts, service.WithSourceResolver(
            client.NewNewsSourceClient(cfg.NewsSourceServiceURL, cfg.NewsSourceTimeout)))
    }
    if cfg.ArchiveEnabled() {
        archiver, err := archive.NewS3Archiver(ctx, archive.Config{
            Endpoint:  cfg.R2Endpoint,
            AccessKey: cfg.R2AccessKey,
            SecretKey: cfg.R2SecretKey,
            Bucket:    cfg.R2Bucket,
            Region:    cfg.R2Region,
        })
        if err != nil {
            log.Fatal().Err(err).Msg("Failed to initialize archive")
        }
        log.Info().Str("bucket", cfg.R2Bucket).Msg("Archive before bulk delete enabled")
        opts = append(opts, service.WithArchiver(archiver))
    }

    svc := service.NewNewsService(repository.NewNewsRepository(coll), opts...)

    app := api.NewNewsApp(api.Options{
        Service:     cfg.Service,
        StoreDriver: backend.Driver(),
        Store:       backend,
        HTTPTimeout: cfg.HTTPTimeout,
    }, svc)

    err = server.Run(ctx, app, ":"+cfg.Port, cfg.ShutdownTimeout, func(ctx context.Context) {
        log.Info().Msg("Closing document store...")
        if err := backend.Close(ctx); err != nil {
            log.Error().Err(err).Msg("Error closing document store")
        }
    })
    if err != nil {
        log.Fatal().Err(err).Msg("Server error")
    }
}
