package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/service"
)

type documentListResponse struct {
	Items []model.Summary `json:"data"`
	Total int             `json:"total"`
}

type uploadResultResponse struct {
	FileName string         `json:"file_name"`
	UploadID string         `json:"upload_id,omitempty"`
	Document *model.Summary `json:"document,omitempty"`
	Error    *errorEnvelope `json:"error,omitempty"`
}

type selectedResponse struct {
	DocumentID *string        `json:"document_id"`
	Document   *model.Summary `json:"document"`
}

// ListDocuments godoc
// @Summary List documents in upload order
// @Tags documents
// @Produce json
// @Success 200 {object} documentListResponse
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs := svc.List(c.UserContext())
		items := make([]model.Summary, 0, len(docs))
		for _, d := range docs {
			items = append(items, d.Summarize())
		}
		return c.JSON(documentListResponse{Items: items, Total: len(items)})
	}
}

// UploadDocuments godoc
// @Summary Upload one or more documents
// @Description Multipart form with one or more "files" parts, or a single "file" part.
// @Tags documents
// @Accept mpfd
// @Produce json
// @Success 201 {object} model.Document
// @Success 207 {array} uploadResultResponse
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /documents [post]
func UploadDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		headers := append(form.File["files"], form.File["file"]...)
		if len(headers) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		files := make([]service.UploadFile, 0, len(headers))
		for _, fh := range headers {
			f, err := readUpload(fh)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			files = append(files, f)
		}

		if len(files) == 1 {
			doc, err := svc.Upload(c.UserContext(), files[0])
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(doc)
		}

		results := svc.UploadBatch(c.UserContext(), files)
		status := fiber.StatusCreated
		out := make([]uploadResultResponse, 0, len(results))
		for _, r := range results {
			item := uploadResultResponse{FileName: r.FileName, UploadID: r.UploadID}
			if r.Err != nil {
				e := classify(r.Err)
				item.Error = &errorEnvelope{Code: e.Code, Message: e.Message}
				status = fiber.StatusMultiStatus
			} else if r.Document != nil {
				s := r.Document.Summarize()
				item.Document = &s
			}
			out = append(out, item)
		}
		return c.Status(status).JSON(out)
	}
}

func readUpload(fh *multipart.FileHeader) (service.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.UploadFile{}, err
	}
	return service.UploadFile{
		Name: fh.Filename,
		Type: fh.Header.Get("Content-Type"),
		Data: data,
	}, nil
}

// GetDocument godoc
// @Summary Get a document with its extracted text
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument godoc
// @Summary Delete a document and its Q&A history
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadOriginal godoc
// @Summary Download the file as it was uploaded
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/original [get]
func DownloadOriginal(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		orig, err := svc.Original(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", orig.Name))
		c.Set(fiber.HeaderContentType, orig.ContentType)
		// fasthttp closes Body once the stream is written.
		return c.SendStream(orig.Body, int(orig.Size))
	}
}

// GetSelectedDocument godoc
// @Summary Get the active document
// @Tags documents
// @Produce json
// @Success 200 {object} selectedResponse
// @Router /documents/selected [get]
func GetSelectedDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(selected(svc.Selected(c.UserContext())))
	}
}

// SelectDocument godoc
// @Summary Set or clear the active document
// @Tags documents
// @Accept json
// @Produce json
// @Param body body selectRequest true "Empty document_id clears the selection"
// @Success 200 {object} selectedResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/selected [put]
func SelectDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}
		if err := svc.Select(c.UserContext(), req.DocumentID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(selected(svc.Selected(c.UserContext())))
	}
}

func selected(doc *model.Document) selectedResponse {
	if doc == nil {
		return selectedResponse{}
	}
	s := doc.Summarize()
	return selectedResponse{DocumentID: &s.ID, Document: &s}
}
