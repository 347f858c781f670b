package service

import (
	"errors"
	"fmt"
)

var (
	ErrIDRequired           = errors.New("id is required")
	ErrNotFound             = errors.New("document not found")
	ErrNoExtractableContent = errors.New("this document has no extractable text content; try re-uploading it as TXT, PDF or DOCX")
	ErrQuestionRequired     = errors.New("question is required")
	ErrQuestionTooLong      = errors.New("question is too long")
	ErrEmptyDocument        = errors.New("no extractable text found")
	ErrCredentialMissing    = errors.New("OpenAI API key is not configured; add one in Settings")
	ErrOriginalUnavailable  = errors.New("original file is not available")
)

// CredentialError means the API credential is missing or was rejected by the remote.
// It is never retried automatically.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string { return e.Err.Error() }

func (e *CredentialError) Unwrap() error { return e.Err }

// EmptyDocumentError is returned when a file extracts to blank text.
type EmptyDocumentError struct {
	File string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("No extractable text found in %s. The file may be empty, scanned or image-based.", e.File)
}

func (e *EmptyDocumentError) Is(target error) bool { return target == ErrEmptyDocument }
