package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/model"
	"docqa/internal/service"
)

// Pinger reports whether the state backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Notifications is the toast list the UI polls.
type Notifications interface {
	List() []model.Toast
	Dismiss(id string) bool
}

// HealthCheck godoc
// @Summary Readiness probe; pings the state backend
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags system
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListUploads godoc
// @Summary In-flight upload progress
// @Tags documents
// @Produce json
// @Success 200 {array} model.UploadProgress
// @Router /uploads [get]
func ListUploads(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uploads := svc.Uploads(c.UserContext())
		if uploads == nil {
			uploads = []model.UploadProgress{}
		}
		return c.JSON(fiber.Map{"data": uploads})
	}
}

// ListNotifications godoc
// @Summary Active notifications, oldest first
// @Tags notifications
// @Produce json
// @Success 200 {array} model.Toast
// @Router /notifications [get]
func ListNotifications(n Notifications) fiber.Handler {
	return func(c *fiber.Ctx) error {
		toasts := n.List()
		if toasts == nil {
			toasts = []model.Toast{}
		}
		return c.JSON(fiber.Map{"data": toasts})
	}
}

// DismissNotification godoc
// @Summary Dismiss a notification now
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /notifications/{id} [delete]
func DismissNotification(n Notifications) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !n.Dismiss(c.Params("id")) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "notification not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
