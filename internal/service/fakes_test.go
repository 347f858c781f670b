package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"docqa/internal/answer"
	"docqa/internal/extract"
	"docqa/internal/model"
	"docqa/internal/repository/memory"
	"docqa/internal/state"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, f extract.File) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

type mockAnswerer struct {
	mock.Mock
}

func (m *mockAnswerer) Answer(ctx context.Context, req answer.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAnswerer) ValidateCredential(ctx context.Context, credential string) (bool, error) {
	args := m.Called(ctx, credential)
	return args.Bool(0), args.Error(1)
}

type shown struct {
	Severity model.Severity
	Message  string
}

type recordingNotifier struct {
	mu    sync.Mutex
	shown []shown
}

func (n *recordingNotifier) Show(severity model.Severity, message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, shown{severity, message})
	return fmt.Sprintf("toast-%d", len(n.shown))
}

func (n *recordingNotifier) all() []shown {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]shown(nil), n.shown...)
}

type fakeTracker struct {
	mu       sync.Mutex
	next     int
	records  map[string]model.UploadProgress
	order    []string
	begun    []string
	failures map[string]string
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{records: map[string]model.UploadProgress{}, failures: map[string]string{}}
}

func (t *fakeTracker) Reserve(fileName string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	id := fmt.Sprintf("upload-%d", t.next)
	t.records[id] = model.UploadProgress{ID: id, FileName: fileName, Status: model.UploadPending}
	t.order = append(t.order, id)
	return id
}

func (t *fakeTracker) Begin(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.records[id]
	r.Status = model.UploadUploading
	t.records[id] = r
	t.begun = append(t.begun, id)
	return true
}

func (t *fakeTracker) Complete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.records[id]
	r.Status, r.Progress = model.UploadCompleted, 100
	t.records[id] = r
}

func (t *fakeTracker) Fail(id, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.records[id]
	r.Status, r.Error = model.UploadError, message
	t.records[id] = r
	t.failures[id] = message
}

func (t *fakeTracker) List() []model.UploadProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.UploadProgress, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.records[id])
	}
	return out
}

func (t *fakeTracker) record(id string) model.UploadProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records[id]
}

type countingRecorder struct {
	mu       sync.Mutex
	started  int
	finished map[string]int
	answers  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{finished: map[string]int{}, answers: map[string]int{}}
}

func (r *countingRecorder) UploadStarted() {
	r.mu.Lock()
	r.started++
	r.mu.Unlock()
}

func (r *countingRecorder) UploadFinished(status string) {
	r.mu.Lock()
	r.finished[status]++
	r.mu.Unlock()
}

func (r *countingRecorder) AnswerFinished(outcome string) {
	r.mu.Lock()
	r.answers[outcome]++
	r.mu.Unlock()
}

func newWorkspace() *state.Workspace {
	return state.NewWorkspace(memory.NewStateMemory(), nil)
}
