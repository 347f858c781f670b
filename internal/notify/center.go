// Package notify implements the transient notification channel shown to the user.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docqa/internal/display"
	"docqa/internal/model"
)

// Durations are the auto-dismiss defaults. Errors get their own, shorter duration.
type Durations struct {
	Default time.Duration
	Error   time.Duration
}

func (d Durations) forSeverity(s model.Severity) time.Duration {
	if s == model.SeverityError {
		return d.Error
	}
	return d.Default
}

// Center holds the visible toasts. Each toast with a positive duration owns a timer
// that dismisses it.
type Center struct {
	durations Durations
	logger    *zap.Logger

	mu     sync.Mutex
	toasts []model.Toast
	timers map[string]*time.Timer
	closed bool
}

func New(d Durations, logger *zap.Logger) *Center {
	if d.Default <= 0 {
		d.Default = 5 * time.Second
	}
	if d.Error <= 0 {
		d.Error = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Center{durations: d, logger: logger, timers: make(map[string]*time.Timer)}
}

// Show displays message with the default duration for its severity.
func (c *Center) Show(severity model.Severity, message string) string {
	return c.ShowFor(severity, message, c.durations.forSeverity(severity))
}

// ShowFor displays message for d. A non-positive d keeps the toast until dismissed.
func (c *Center) ShowFor(severity model.Severity, message string, d time.Duration) string {
	if !severity.Valid() {
		severity = model.SeverityInfo
	}
	if d < 0 {
		d = 0
	}
	t := model.Toast{
		ID:        "toast-" + uuid.NewString(),
		Severity:  severity,
		Message:   display.Sanitize(message, 0),
		Duration:  d,
		CreatedAt: time.Now().UTC(),
	}
	c.log(t)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.toasts = append(slices.Clone(c.toasts), t)
	if d > 0 && !c.closed {
		id := t.ID
		c.timers[id] = time.AfterFunc(d, func() { c.Dismiss(id) })
	}
	return t.ID
}

// Dismiss removes a toast immediately and cancels its timer.
// It reports whether the toast was visible.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	i := slices.IndexFunc(c.toasts, func(t model.Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	c.toasts = slices.Delete(slices.Clone(c.toasts), i, i+1)
	return true
}

// List returns the visible toasts, oldest first.
func (c *Center) List() []model.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.toasts)
}

// Close cancels every pending dismissal. Later toasts are kept until dismissed.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
}

func (c *Center) log(t model.Toast) {
	fields := []zap.Field{
		zap.String("toast_id", t.ID),
		zap.String("severity", string(t.Severity)),
		zap.String("message", t.Message),
	}
	switch t.Severity {
	case model.SeverityError:
		c.logger.Warn("notification", fields...)
	case model.SeverityWarning:
		c.logger.Info("notification", fields...)
	default:
		c.logger.Debug("notification", fields...)
	}
}
