package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
)

const metaSuffix = ".meta.json"

var validSegment = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type fileMeta struct {
	Size         int64             `json:"size"`
	ETag         string            `json:"etag"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// File keeps objects on disk: the bytes at <dir>/<key> and their info at
// <dir>/<key>.meta.json. Both are written through a temporary file and a rename.
type File struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

var _ Storage = (*File)(nil)

// NewFile creates dir if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create object dir: %w", err)
	}
	return &File{dir: dir, now: time.Now}, nil
}

func (f *File) path(key string) (string, error) {
	if strings.HasSuffix(key, metaSuffix) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	segments := strings.Split(key, "/")
	for _, s := range segments {
		if s == "." || s == ".." || !validSegment.MatchString(s) {
			return "", fmt.Errorf("invalid object key %q", key)
		}
	}
	return filepath.Join(append([]string{f.dir}, segments...)...), nil
}

func (f *File) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	p, err := f.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	h := md5.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		tmp.Close()
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	if opt.Size >= 0 && n != opt.Size {
		return ObjectInfo{}, fmt.Errorf("put %s: read %d bytes, expected %d", key, n, opt.Size)
	}

	meta := fileMeta{
		Size:         n,
		ETag:         hex.EncodeToString(h.Sum(nil)),
		ContentType:  opt.ContentType,
		LastModified: f.now().UTC(),
		Metadata:     maps.Clone(opt.Metadata),
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("encode info %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	if err := writeFile(p+metaSuffix, raw); err != nil {
		return ObjectInfo{}, fmt.Errorf("put info %s: %w", key, err)
	}
	return meta.info(key), nil
}

func (f *File) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}
	p, err := f.path(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	raw, err := os.ReadFile(p + metaSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("read info %s: %w", key, err)
	}
	var meta fileMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("decode info %s: %w", key, err)
	}

	body, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("open %s: %w", key, err)
	}
	return body, meta.info(key), nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range []string{p + metaSuffix, p} {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (m fileMeta) info(key string) ObjectInfo {
	return ObjectInfo{
		Key:          key,
		Size:         m.Size,
		ETag:         m.ETag,
		ContentType:  m.ContentType,
		LastModified: m.LastModified,
		Metadata:     m.Metadata,
	}
}

func writeFile(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
