// Package storage archives the original bytes of uploaded documents in an object store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrObjectNotFound is returned by Get when the key holds nothing.
var ErrObjectNotFound = errors.New("object not found")

// DocumentPrefix is where uploaded originals live.
const DocumentPrefix = "documents/"

// MetaOriginalName is the metadata key holding the uploaded file name.
const MetaOriginalName = "original-filename"

// PutObjectOptions carry the object size (-1 when unknown), content type and user metadata.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object store. Implementations are safe for concurrent use.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns a streaming reader; the caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes key. Removing a missing key succeeds.
	Delete(ctx context.Context, key string) error
}

// DocumentKey builds the archive key for a document id, keeping the lowercased extension of
// the uploaded file name.
func DocumentKey(id, fileName string) string {
	return DocumentPrefix + id + strings.ToLower(path.Ext(fileName))
}
