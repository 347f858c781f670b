package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"docqa/internal/model"
)

func TestCenter_DefaultsPerSeverity(t *testing.T) {
	c := New(Durations{}, nil)
	defer c.Close()

	c.Show(model.SeveritySuccess, "saved")
	c.Show(model.SeverityError, "failed")

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, 5*time.Second, list[0].Duration)
	assert.Equal(t, 3*time.Second, list[1].Duration)
	assert.Less(t, list[1].Duration, list[0].Duration)
}

func TestCenter_AutoDismiss(t *testing.T) {
	c := New(Durations{Default: 20 * time.Millisecond, Error: 10 * time.Millisecond}, nil)
	defer c.Close()

	id := c.Show(model.SeverityInfo, "hello")
	require.Len(t, c.List(), 1)
	assert.True(t, strings.HasPrefix(id, "toast-"))

	assert.Eventually(t, func() bool { return len(c.List()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestCenter_PersistentUntilDismissed(t *testing.T) {
	c := New(Durations{Default: 10 * time.Millisecond}, nil)
	defer c.Close()

	id := c.ShowFor(model.SeverityWarning, "sticky", 0)
	time.Sleep(30 * time.Millisecond)
	require.Len(t, c.List(), 1)

	assert.True(t, c.Dismiss(id))
	assert.False(t, c.Dismiss(id))
	assert.Empty(t, c.List())
}

func TestCenter_DismissCancelsTimer(t *testing.T) {
	c := New(Durations{Default: 10 * time.Millisecond}, nil)
	defer c.Close()

	keep := c.ShowFor(model.SeverityInfo, "keep", 0)
	id := c.Show(model.SeverityInfo, "gone")
	assert.True(t, c.Dismiss(id))

	time.Sleep(30 * time.Millisecond)
	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)
}

func TestCenter_SanitizesAndDefaultsSeverity(t *testing.T) {
	c := New(Durations{}, nil)
	defer c.Close()

	c.ShowFor(model.Severity("loud"), "bad\x00name\x1b.pdf", 0)

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "badname.pdf", list[0].Message)
	assert.Equal(t, model.SeverityInfo, list[0].Severity)
}

func TestCenter_CloseStopsTimers(t *testing.T) {
	c := New(Durations{Default: 10 * time.Millisecond}, nil)

	c.Show(model.SeverityInfo, "a")
	c.Close()
	c.Show(model.SeverityInfo, "b")

	time.Sleep(30 * time.Millisecond)
	assert.Len(t, c.List(), 2)
}

func TestCenter_LogsBySeverity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(Durations{}, zap.New(core))
	defer c.Close()

	c.ShowFor(model.SeverityError, "boom", 0)
	c.ShowFor(model.SeveritySuccess, "ok", 0)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].ContextMap()["message"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}
