package middleware

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey).(string)
		return c.SendString(rid + "|" + RequestIDFromContext(c.UserContext()))
	})

	t.Run("generates an id when missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		rid := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, rid)
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		assert.Equal(t, rid+"|"+rid, buf.String())
	})

	t.Run("preserves an existing id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "test-id-123", resp.Header.Get(RequestIDHeader))
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		assert.Equal(t, "test-id-123|test-id-123", buf.String())
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))

		resp, err := app.Test(req)
		require.NoError(t, err)
		rid := resp.Header.Get(RequestIDHeader)
		assert.Len(t, rid, 36)
	})
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()
	app.Use(RequestID())
	app.Use(Logger(zap.New(core)))

	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.NotEmpty(t, first["request_id"])
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/ok", first["path"])
	assert.EqualValues(t, fiber.StatusAccepted, first["status"])
	assert.Contains(t, first, "latency")
	assert.Equal(t, "http", entries[0].LoggerName)

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.EqualValues(t, fiber.StatusServiceUnavailable, entries[2].ContextMap()["status"])
	assert.Equal(t, "down", entries[2].ContextMap()["error"])
}
