package model

// UploadStatus is the lifecycle state of an in-flight upload.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadCompleted UploadStatus = "completed"
	UploadError     UploadStatus = "error"
)

// UploadProgress tracks a single upload. ID is a temporary identifier and never a Document ID.
type UploadProgress struct {
	ID       string       `json:"id"`
	FileName string       `json:"fileName"`
	Progress int          `json:"progress"`
	Status   UploadStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
}
