package config_test

import (
	"testing"
	"time"

	"github.com/bilgisen/newz/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyValuesRejected(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load(config.ServiceNewsSource)
	require.Error(t, err, "empty STORE_DRIVER and PORT must not validate")
	require.Nil(t, cfg)
}

func TestLoad_ServiceDefaults(t *testing.T) {
	cfg, err := config.Load(config.ServiceNews)
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, "news", cfg.Collection)
	require.Equal(t, config.DriverMongo, cfg.StoreDriver)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.ArchiveEnabled())

	cfg, err = config.Load(config.ServiceNewsSource)
	require.NoError(t, err)
	require.Equal(t, "8082", cfg.Port)
	require.Equal(t, "newssource", cfg.Collection)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "FILE")
	t.Setenv("STORAGE_PATH", t.TempDir())
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("NEWSSOURCE_SERVICE_URL", "http://newssource:8082")

	cfg, err := config.Load(config.ServiceNews)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, config.DriverFile, cfg.StoreDriver)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.False(t, cfg.LogPretty)
	require.Equal(t, "http://newssource:8082", cfg.NewsSourceServiceURL)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := config.Load(config.ServiceNews)
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Service:         config.ServiceNewsSource,
			Collection:      "newssource",
			Port:            "8082",
			ShutdownTimeout: time.Second,
			HTTPTimeout:     time.Second,
			StoreDriver:     config.DriverMemory,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "memory driver", mutate: func(c *config.Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *config.Config) { c.StoreDriver = "cassandra" },
			wantErr: "StoreDriver",
		},
		{
			name:    "mongo without uri",
			mutate:  func(c *config.Config) { c.StoreDriver = config.DriverMongo; c.MongoDatabase = "newz" },
			wantErr: "MongoURI",
		},
		{
			name:    "redis without url",
			mutate:  func(c *config.Config) { c.StoreDriver = config.DriverRedis },
			wantErr: "RedisURL",
		},
		{
			name:    "non numeric port",
			mutate:  func(c *config.Config) { c.Port = "http" },
			wantErr: "Port",
		},
		{
			name:    "bad newssource url",
			mutate:  func(c *config.Config) { c.NewsSourceServiceURL = "not a url" },
			wantErr: "NewsSourceServiceURL",
		},
		{
			name:    "unknown service",
			mutate:  func(c *config.Config) { c.Service = "comments" },
			wantErr: "Service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestArchiveEnabled(t *testing.T) {
	cfg := &config.Config{R2Endpoint: "https://r2.example.com", R2Bucket: "newz"}
	require.False(t, cfg.ArchiveEnabled())

	cfg.R2AccessKey = "key"
	cfg.R2SecretKey = "secret"
	require.True(t, cfg.ArchiveEnabled())
}
