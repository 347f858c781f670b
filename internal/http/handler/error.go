package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/answer"
	"docqa/internal/extract"
	"docqa/internal/http/middleware"
	"docqa/internal/service"
	"docqa/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be safe to show.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// apiError is the status, code and message a service error maps to.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// classify maps service errors onto the API error envelope. Messages shown to users in
// notifications are passed through; anything unrecognized becomes a generic 500.
func classify(err error) apiError {
	var (
		verr    *validation.Error
		credErr *service.CredentialError
		exErr   *extract.Error
		empty   *service.EmptyDocumentError
		remote  *answer.Error
	)
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return apiError{fiber.StatusBadRequest, "ID_REQUIRED", "id is required"}
	case errors.Is(err, service.ErrNotFound):
		return apiError{fiber.StatusNotFound, "NOT_FOUND", "document not found"}
	case errors.Is(err, service.ErrOriginalUnavailable):
		return apiError{fiber.StatusNotFound, "ORIGINAL_UNAVAILABLE", err.Error()}
	case errors.As(err, &verr):
		code := "INVALID_FILE_TYPE"
		if verr.Reason == validation.ReasonTooLarge {
			code = "FILE_TOO_LARGE"
		}
		return apiError{fiber.StatusUnprocessableEntity, code, verr.Error()}
	case errors.As(err, &credErr):
		if errors.Is(err, service.ErrCredentialMissing) {
			return apiError{fiber.StatusPreconditionFailed, "CREDENTIAL_MISSING", credErr.Error()}
		}
		return apiError{fiber.StatusUnprocessableEntity, "CREDENTIAL_INVALID", credErr.Error()}
	case errors.Is(err, service.ErrNoExtractableContent):
		return apiError{fiber.StatusUnprocessableEntity, "NO_CONTENT", err.Error()}
	case errors.Is(err, service.ErrQuestionRequired), errors.Is(err, service.ErrQuestionTooLong):
		return apiError{fiber.StatusBadRequest, "INVALID_QUESTION", err.Error()}
	case errors.As(err, &exErr):
		return apiError{fiber.StatusUnprocessableEntity, "EXTRACTION_FAILED", exErr.Error()}
	case errors.As(err, &empty):
		return apiError{fiber.StatusUnprocessableEntity, "EMPTY_DOCUMENT", empty.Error()}
	case errors.As(err, &remote):
		if remote.StatusCode == http.StatusTooManyRequests {
			return apiError{fiber.StatusTooManyRequests, "RATE_LIMITED", remote.Message}
		}
		return apiError{fiber.StatusBadGateway, "UPSTREAM_ERROR", remote.Message}
	case errors.Is(err, answer.ErrNoChoices):
		return apiError{fiber.StatusBadGateway, "UPSTREAM_ERROR", answer.ErrNoChoices.Error()}
	default:
		return apiError{fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"}
	}
}

func writeServiceError(c *fiber.Ctx, err error) error {
	e := classify(err)
	return writeError(c, e.Status, e.Code, e.Message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
