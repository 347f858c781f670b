package state

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"docqa/internal/model"
	"docqa/internal/repository"
)

// Persisted keys.
const (
	KeyDocuments  = "documents"
	KeyHistory    = "qaHistory"
	KeyCredential = "apiKey"
	KeyTheme      = "theme"
)

// Workspace is the application state shared by the services: the uploaded documents, the
// Q&A history, the selected document, the API credential and the theme.
//
// Every mutation updates memory first and then writes the affected keys to the repository.
// A failed write is logged and the in-memory value stays; a failed read on Load falls back to
// the default for that key.
type Workspace struct {
	repo repository.StateRepository
	log  *zap.Logger

	mu         sync.RWMutex
	documents  []model.Document
	history    []model.QAPair
	selected   string
	credential string
	theme      model.Theme
}

func NewWorkspace(repo repository.StateRepository, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		repo:      repo,
		log:       logger.Named("state"),
		documents: []model.Document{},
		history:   []model.QAPair{},
		theme:     model.ThemeLight,
	}
}

// Load replaces the in-memory state with what the repository holds. It never fails.
func (w *Workspace) Load(ctx context.Context) {
	var (
		docs       []model.Document
		history    []model.QAPair
		credential string
		theme      model.Theme
	)
	read(ctx, w, KeyDocuments, &docs)
	read(ctx, w, KeyHistory, &history)
	read(ctx, w, KeyCredential, &credential)
	read(ctx, w, KeyTheme, &theme)

	if docs == nil {
		docs = []model.Document{}
	}
	if history == nil {
		history = []model.QAPair{}
	}
	if !theme.Valid() {
		theme = model.ThemeLight
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.documents = docs
	w.history = history
	w.credential = credential
	w.theme = theme
	w.selected = ""

	w.log.Info("workspace loaded",
		zap.Int("documents", len(docs)),
		zap.Int("qa_pairs", len(history)),
		zap.String("theme", string(theme)),
	)
}

// read decodes key into dst. dst is left untouched unless the whole value decodes.
func read[T any](ctx context.Context, w *Workspace, key string, dst *T) {
	raw, err := w.repo.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return
	}
	if err != nil {
		w.log.Warn("read state", zap.String("key", key), zap.Error(err))
		return
	}
	var v T
	if err := Unmarshal(raw, &v); err != nil {
		w.log.Warn("decode state", zap.String("key", key), zap.Error(err))
		return
	}
	*dst = v
}

// write must be called with mu held.
func (w *Workspace) write(ctx context.Context, key string, v any) {
	raw, err := Marshal(v)
	if err != nil {
		w.log.Warn("encode state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := w.repo.Put(ctx, key, raw); err != nil {
		w.log.Warn("write state", zap.String("key", key), zap.Error(err))
	}
}

func (w *Workspace) Ping(ctx context.Context) error {
	return w.repo.Ping(ctx)
}

// Documents returns the documents in upload order.
func (w *Workspace) Documents() []model.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.documents)
}

func (w *Workspace) Document(id string) (model.Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := w.indexOf(id)
	if i < 0 {
		return model.Document{}, false
	}
	return w.documents[i], true
}

func (w *Workspace) indexOf(id string) int {
	return slices.IndexFunc(w.documents, func(d model.Document) bool { return d.ID == id })
}

func (w *Workspace) AddDocument(ctx context.Context, doc model.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.documents = append(slices.Clone(w.documents), doc)
	w.write(ctx, KeyDocuments, w.documents)
}

// RemoveDocument drops the document, its Q&A pairs and the selection if it pointed at it.
// It reports whether the document existed.
func (w *Workspace) RemoveDocument(ctx context.Context, id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.indexOf(id) < 0 {
		return false
	}
	w.documents = slices.DeleteFunc(slices.Clone(w.documents), func(d model.Document) bool { return d.ID == id })
	before := len(w.history)
	w.history = slices.DeleteFunc(slices.Clone(w.history), func(p model.QAPair) bool { return p.DocumentID == id })
	if w.selected == id {
		w.selected = ""
	}
	w.write(ctx, KeyDocuments, w.documents)
	if len(w.history) != before {
		w.write(ctx, KeyHistory, w.history)
	}
	return true
}

// SelectDocument marks id as the active document. An empty id clears the selection.
// Unknown ids are rejected.
func (w *Workspace) SelectDocument(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id != "" && w.indexOf(id) < 0 {
		return false
	}
	w.selected = id
	return true
}

func (w *Workspace) SelectedDocumentID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.selected
}

// History returns the Q&A pairs, newest first.
func (w *Workspace) History() []model.QAPair {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.history)
}

func (w *Workspace) PrependQA(ctx context.Context, pair model.QAPair) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.history = append([]model.QAPair{pair}, w.history...)
	w.write(ctx, KeyHistory, w.history)
}

func (w *Workspace) Credential() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.credential
}

// SetCredential stores key. An empty key removes the stored credential.
func (w *Workspace) SetCredential(ctx context.Context, key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.credential = key
	if key == "" {
		if err := w.repo.Delete(ctx, KeyCredential); err != nil {
			w.log.Warn("delete state", zap.String("key", KeyCredential), zap.Error(err))
		}
		return
	}
	w.write(ctx, KeyCredential, key)
}

func (w *Workspace) Theme() model.Theme {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.theme
}

func (w *Workspace) SetTheme(ctx context.Context, theme model.Theme) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = theme
	w.write(ctx, KeyTheme, theme)
}

// ToggleTheme flips the theme between light and dark and returns the new value.
func (w *Workspace) ToggleTheme(ctx context.Context) model.Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = w.theme.Toggle()
	w.write(ctx, KeyTheme, w.theme)
	return w.theme
}
