package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/service"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Health        Pinger
	Documents     service.DocumentService
	QA            service.QAService
	Settings      service.SettingsService
	Notifications Notifications
	Now           func() time.Time
}

// RegisterRoutes attaches the API routes to app. Handlers stay thin; the services own the
// behavior.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}

	app.Get("/health", HealthCheck(d.Health))
	app.Get("/healthz", LivenessProbe())

	// /documents/selected must come before /documents/:id.
	app.Get("/documents/selected", GetSelectedDocument(d.Documents))
	app.Put("/documents/selected", SelectDocument(d.Documents))
	app.Get("/documents", ListDocuments(d.Documents))
	app.Post("/documents", UploadDocuments(d.Documents))
	app.Get("/documents/:id", GetDocument(d.Documents))
	app.Get("/documents/:id/original", DownloadOriginal(d.Documents))
	app.Delete("/documents/:id", DeleteDocument(d.Documents))
	app.Get("/uploads", ListUploads(d.Documents))

	app.Post("/qa", AskQuestion(d.QA))
	app.Get("/qa/history", ListHistory(d.QA))
	app.Get("/qa/export", ExportHistory(d.QA, d.Now))

	app.Get("/notifications", ListNotifications(d.Notifications))
	app.Delete("/notifications/:id", DismissNotification(d.Notifications))

	app.Get("/settings", GetSettings(d.Settings))
	app.Put("/settings/credential", SetCredential(d.Settings))
	app.Delete("/settings/credential", ClearCredential(d.Settings))
	app.Post("/settings/theme/toggle", ToggleTheme(d.Settings))
}
