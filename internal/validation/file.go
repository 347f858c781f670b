package validation

import (
	"fmt"
	"strings"
)

const (
	// MaxFileSizeMB is the upload ceiling in mebibytes.
	MaxFileSizeMB = 10
	// MaxFileSizeBytes is the upload ceiling. Files strictly larger are rejected.
	MaxFileSizeBytes = MaxFileSizeMB * 1024 * 1024
	// MaxQuestionLength bounds a question in characters.
	MaxQuestionLength = 500
)

// AllowedMIMETypes lists the declared media types accepted for upload.
var AllowedMIMETypes = []string{
	"text/plain",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/rtf",
	"text/rtf",
	"application/vnd.oasis.opendocument.text",
	"text/markdown",
	"text/csv",
}

// AllowedExtensions lists the file name suffixes accepted for upload.
var AllowedExtensions = []string{".txt", ".pdf", ".doc", ".docx", ".rtf", ".odt", ".md", ".csv"}

// Reason is the machine-readable cause of a rejected file.
type Reason string

const (
	ReasonInvalidType Reason = "invalid_type"
	ReasonTooLarge    Reason = "too_large"
)

// Candidate is what the validator needs to know about a file.
type Candidate struct {
	Name string
	Type string
	Size int64
}

// Result of ValidateFile. Reason is empty when Valid is true.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

// Error is returned when a file fails validation.
type Error struct {
	File   string
	Reason Reason
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonInvalidType:
		return fmt.Sprintf("%s: unsupported file type", e.File)
	case ReasonTooLarge:
		return fmt.Sprintf("%s: file exceeds %dMB", e.File, MaxFileSizeMB)
	default:
		return fmt.Sprintf("%s: invalid file", e.File)
	}
}

// ValidateFile accepts a file when either its declared type or its name suffix is on the
// allow-list, and its size is within the ceiling. The type check runs first.
func ValidateFile(c Candidate) Result {
	if !typeAllowed(c) {
		return Result{Valid: false, Reason: ReasonInvalidType}
	}
	if c.Size > MaxFileSizeBytes {
		return Result{Valid: false, Reason: ReasonTooLarge}
	}
	return Result{Valid: true}
}

// Check is ValidateFile returning an *Error for rejected files.
func Check(c Candidate) error {
	if r := ValidateFile(c); !r.Valid {
		return &Error{File: c.Name, Reason: r.Reason}
	}
	return nil
}

func typeAllowed(c Candidate) bool {
	for _, t := range AllowedMIMETypes {
		if c.Type == t {
			return true
		}
	}
	name := strings.ToLower(c.Name)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
