package model

import "time"

// Document is an uploaded file together with the plain text extracted from it.
// Content is always UTF-8 text; the original bytes live in object storage under StoragePath.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	Type        string    `json:"type"`
	UploadDate  time.Time `json:"uploadDate"`
	Content     string    `json:"content"`
	StoragePath string    `json:"storagePath,omitempty"`
}

// Summary is the listing view of a Document without its extracted text.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadDate time.Time `json:"uploadDate"`
	HasContent bool      `json:"hasContent"`
}

// Summarize drops the extracted text.
func (d Document) Summarize() Summary {
	return Summary{
		ID:         d.ID,
		Name:       d.Name,
		Size:       d.Size,
		Type:       d.Type,
		UploadDate: d.UploadDate,
		HasContent: d.Content != "",
	}
}
