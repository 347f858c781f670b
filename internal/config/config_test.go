package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STATE_BACKEND", "postgres")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("UPLOAD_PROGRESS_INTERVAL_MS", "50")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "postgres", cfg.State.Backend)
	assert.InDelta(t, 0.2, cfg.OpenAI.Temperature, 1e-9)
	assert.Equal(t, 50*time.Millisecond, cfg.Upload.Interval)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
	assert.Equal(t, 1000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 12000, cfg.OpenAI.MaxContentChars)
	assert.Equal(t, 200*time.Millisecond, cfg.Upload.Interval)
	assert.Equal(t, 10, cfg.Upload.Step)
	assert.Equal(t, 90, cfg.Upload.Ceiling)
	assert.Equal(t, time.Second, cfg.Upload.SuccessGrace)
	assert.Equal(t, 3*time.Second, cfg.Upload.ErrorGrace)
	assert.Equal(t, 5*time.Second, cfg.Toast.Duration)
	assert.Equal(t, 3*time.Second, cfg.Toast.ErrorDuration)
	assert.Equal(t, "docqa", cfg.Database.AppName)
	assert.Equal(t, 5, cfg.Database.ConnectTimeoutSec)
	assert.Equal(t, "native", cfg.Parser.Backend)
	assert.Equal(t, "file", cfg.State.Backend)
	assert.Equal(t, "./data/objects", cfg.State.ObjectDir)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	t.Setenv(key, "1.5")
	assert.InDelta(t, 1.5, getEnvFloat(key, 0), 1e-9)

	t.Setenv(key, "nope")
	assert.InDelta(t, 0.7, getEnvFloat(key, 0.7), 1e-9)
}
