package server

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStopsOnCancel(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	ready := make(chan struct{})
	app.Hooks().OnListen(func(fiber.ListenData) error {
		close(ready)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cleaned := false
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, app, "127.0.0.1:0", time.Second, func(context.Context) { cleaned = true })
	}()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, cleaned)
}

func TestRunReturnsListenError(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	err := Run(context.Background(), app, "256.0.0.1:99999", time.Second, nil)
	assert.Error(t, err)
}
