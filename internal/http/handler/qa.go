package handler

import (
	"fmt"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/model"
	"docqa/internal/service"
)

type historyResponse struct {
	Items []model.QAPair `json:"data"`
	Total int            `json:"total"`
}

// AskQuestion godoc
// @Summary Ask a question about a document
// @Tags qa
// @Accept json
// @Produce json
// @Param body body askRequest true "Question"
// @Success 201 {object} model.QAPair
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 412 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /qa [post]
func AskQuestion(svc service.QAService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}
		pair, err := svc.Ask(c.UserContext(), req.DocumentID, req.Question)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pair)
	}
}

// ListHistory godoc
// @Summary List Q&A history, newest first
// @Tags qa
// @Produce json
// @Param q query string false "Case-insensitive search over questions and answers"
// @Param document_id query string false "Only pairs about this document"
// @Success 200 {object} historyResponse
// @Router /qa/history [get]
func ListHistory(svc service.QAService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		docID := c.Query("document_id")

		var pairs []model.QAPair
		switch q := c.Query("q"); {
		case q != "":
			pairs = svc.Search(ctx, q)
			if docID != "" {
				pairs = slices.DeleteFunc(pairs, func(p model.QAPair) bool { return p.DocumentID != docID })
			}
		case docID != "":
			pairs = svc.HistoryForDocument(ctx, docID)
		default:
			pairs = svc.History(ctx)
		}
		if pairs == nil {
			pairs = []model.QAPair{}
		}
		return c.JSON(historyResponse{Items: pairs, Total: len(pairs)})
	}
}

// ExportHistory godoc
// @Summary Download the Q&A history as JSON
// @Tags qa
// @Produce json
// @Success 200 {array} model.QAPair
// @Router /qa/export [get]
func ExportHistory(svc service.QAService, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exp, err := svc.Export(c.UserContext(), now())
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exp.FileName))
		c.Type("json")
		return c.Send(exp.Data)
	}
}
