package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docqa/internal/extract"
	"docqa/internal/model"
	"docqa/internal/state"
	"docqa/internal/storage"
	"docqa/internal/validation"
)

const (
	defaultContentType = "text/plain"
	uploadConcurrency  = 4
)

// UploadFile is one file received from the client.
type UploadFile struct {
	Name string
	Type string
	Data []byte
}

func (f UploadFile) candidate() validation.Candidate {
	return validation.Candidate{Name: f.Name, Type: f.Type, Size: int64(len(f.Data))}
}

// UploadResult is the outcome for one file of a batch. UploadID is empty for files rejected
// by validation.
type UploadResult struct {
	FileName string
	UploadID string
	Document *model.Document
	Err      error
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates, extracts and archives one file and adds it to the workspace.
	Upload(ctx context.Context, f UploadFile) (*model.Document, error)

	// UploadBatch handles several files concurrently. Results follow the input order.
	UploadBatch(ctx context.Context, files []UploadFile) []UploadResult

	// List returns the documents in upload order.
	List(ctx context.Context) []model.Document

	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes the archived original first and only then the document, its Q&A pairs
	// and the selection.
	Delete(ctx context.Context, id string) error

	// Select marks the active document. An empty id clears it.
	Select(ctx context.Context, id string) error

	// Selected returns the active document, or nil.
	Selected(ctx context.Context) *model.Document

	// Uploads lists the in-flight progress records.
	Uploads(ctx context.Context) []model.UploadProgress

	// Original opens the archived bytes of a document. The caller closes Body.
	Original(ctx context.Context, id string) (*Original, error)
}

// Original is an archived upload as it was received.
type Original struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// DocumentDeps groups the collaborators of the document service.
type DocumentDeps struct {
	Workspace *state.Workspace
	Storage   storage.Storage
	Extractor Extractor
	Tracker   ProgressTracker
	Notifier  Notifier
	Metrics   Recorder
	Logger    *zap.Logger
}

type documentService struct {
	ws      *state.Workspace
	store   storage.Storage
	extract Extractor
	tracker ProgressTracker
	notify  Notifier
	metrics Recorder
	log     *zap.Logger
	now     func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(d DocumentDeps) DocumentService {
	if d.Metrics == nil {
		d.Metrics = nopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &documentService{
		ws:      d.Workspace,
		store:   d.Storage,
		extract: d.Extractor,
		tracker: d.Tracker,
		notify:  d.Notifier,
		metrics: d.Metrics,
		log:     d.Logger.Named("documents"),
		now:     time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, f UploadFile) (*model.Document, error) {
	res := s.UploadBatch(ctx, []UploadFile{f})[0]
	return res.Document, res.Err
}

func (s *documentService) UploadBatch(ctx context.Context, files []UploadFile) []UploadResult {
	results := make([]UploadResult, len(files))
	var (
		badType []string
		tooBig  []validation.Candidate
		valid   []int
	)
	for i, f := range files {
		results[i].FileName = f.Name
		if err := validation.Check(f.candidate()); err != nil {
			results[i].Err = err
			var verr *validation.Error
			if errors.As(err, &verr) && verr.Reason == validation.ReasonTooLarge {
				tooBig = append(tooBig, f.candidate())
			} else {
				badType = append(badType, f.Name)
			}
			continue
		}
		valid = append(valid, i)
	}
	if len(badType) > 0 {
		s.notify.Show(model.SeverityError, validation.FormatTypeError(badType))
	}
	if len(tooBig) > 0 {
		s.notify.Show(model.SeverityError, validation.FormatSizeError(tooBig))
	}

	// Every accepted file shows up as pending before any of them starts.
	for _, i := range valid {
		results[i].UploadID = s.tracker.Reserve(files[i].Name)
	}

	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for _, i := range valid {
		g.Go(func() error {
			doc, err := s.process(ctx, results[i].UploadID, files[i])
			results[i].Document = doc
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *documentService) process(ctx context.Context, uploadID string, f UploadFile) (*model.Document, error) {
	s.tracker.Begin(uploadID)
	s.metrics.UploadStarted()

	doc, err := s.ingest(ctx, f)
	if err != nil {
		msg := uploadMessage(err)
		s.tracker.Fail(uploadID, msg)
		s.metrics.UploadFinished(string(model.UploadError))
		s.notify.Show(model.SeverityError, msg)
		s.log.Warn("upload failed", zap.String("file", f.Name), zap.Error(err))
		return nil, err
	}

	s.ws.AddDocument(ctx, *doc)
	s.tracker.Complete(uploadID)
	s.metrics.UploadFinished(string(model.UploadCompleted))
	s.notify.Show(model.SeveritySuccess, fmt.Sprintf("%s uploaded successfully", f.Name))
	s.log.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("file", f.Name),
		zap.Int64("size", doc.Size),
		zap.Int("content_len", len(doc.Content)),
	)
	return doc, nil
}

func (s *documentService) ingest(ctx context.Context, f UploadFile) (*model.Document, error) {
	text, err := s.extract.Extract(ctx, extract.File{
		Name: f.Name,
		Type: f.Type,
		Size: int64(len(f.Data)),
		Data: f.Data,
	})
	if err != nil {
		return nil, err
	}
	if isBlank(text) {
		return nil, &EmptyDocumentError{File: f.Name}
	}

	contentType := f.Type
	if contentType == "" {
		contentType = defaultContentType
	}
	id := uuid.NewString()
	key := storage.DocumentKey(id, f.Name)
	info, err := s.store.Put(ctx, key, bytes.NewReader(f.Data), storage.PutObjectOptions{
		Size:        int64(len(f.Data)),
		ContentType: contentType,
		Metadata: map[string]string{
			storage.MetaOriginalName: f.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("archive original: %w", err)
	}

	return &model.Document{
		ID:          id,
		Name:        f.Name,
		Size:        int64(len(f.Data)),
		Type:        contentType,
		UploadDate:  s.now().UTC(),
		Content:     text,
		StoragePath: info.Key,
	}, nil
}

// uploadMessage is the user-facing text for a failed upload.
func uploadMessage(err error) string {
	var (
		exErr    *extract.Error
		emptyErr *EmptyDocumentError
	)
	switch {
	case errors.As(err, &exErr), errors.As(err, &emptyErr):
		return err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Upload cancelled"
	default:
		return "Upload failed"
	}
}

func (s *documentService) List(_ context.Context) []model.Document {
	return s.ws.Documents()
}

func (s *documentService) Get(_ context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, ok := s.ws.Document(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, ok := s.ws.Document(id)
	if !ok {
		return ErrNotFound
	}
	if doc.StoragePath != "" {
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			s.notify.Show(model.SeverityError, "Failed to delete document")
			s.log.Warn("delete archived original", zap.String("document_id", id), zap.Error(err))
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	s.ws.RemoveDocument(ctx, id)
	s.notify.Show(model.SeveritySuccess, "Document deleted successfully")
	return nil
}

func (s *documentService) Select(_ context.Context, id string) error {
	if !s.ws.SelectDocument(id) {
		return ErrNotFound
	}
	return nil
}

func (s *documentService) Selected(_ context.Context) *model.Document {
	id := s.ws.SelectedDocumentID()
	if id == "" {
		return nil
	}
	doc, ok := s.ws.Document(id)
	if !ok {
		return nil
	}
	return &doc
}

func (s *documentService) Uploads(_ context.Context) []model.UploadProgress {
	return s.tracker.List()
}

func (s *documentService) Original(ctx context.Context, id string) (*Original, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, ok := s.ws.Document(id)
	if !ok {
		return nil, ErrNotFound
	}
	if doc.StoragePath == "" {
		return nil, ErrOriginalUnavailable
	}
	body, info, err := s.store.Get(ctx, doc.StoragePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		s.log.Warn("archived original missing", zap.String("document_id", id), zap.String("key", doc.StoragePath))
		return nil, ErrOriginalUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("open original: %w", err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = doc.Type
	}
	return &Original{Name: doc.Name, ContentType: contentType, Size: info.Size, Body: body}, nil
}
