package handler

import (
	"github.com/gofiber/fiber/v2"

	"docqa/internal/model"
	"docqa/internal/service"
)

type themeResponse struct {
	Theme model.Theme `json:"theme"`
}

// GetSettings godoc
// @Summary Get preferences
// @Tags settings
// @Produce json
// @Success 200 {object} service.Settings
// @Router /settings [get]
func GetSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Get(c.UserContext()))
	}
}

// SetCredential godoc
// @Summary Validate and store the OpenAI API key
// @Description A blank api_key clears the stored key.
// @Tags settings
// @Accept json
// @Produce json
// @Param body body credentialRequest true "API key"
// @Success 200 {object} service.Settings
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /settings/credential [put]
func SetCredential(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}
		if err := svc.SetCredential(c.UserContext(), req.APIKey); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(svc.Get(c.UserContext()))
	}
}

// ClearCredential godoc
// @Summary Remove the stored API key
// @Tags settings
// @Produce json
// @Success 200 {object} service.Settings
// @Router /settings/credential [delete]
func ClearCredential(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc.ClearCredential(c.UserContext())
		return c.JSON(svc.Get(c.UserContext()))
	}
}

// ToggleTheme godoc
// @Summary Switch between light and dark
// @Tags settings
// @Produce json
// @Success 200 {object} themeResponse
// @Router /settings/theme/toggle [post]
func ToggleTheme(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(themeResponse{Theme: svc.ToggleTheme(c.UserContext())})
	}
}
