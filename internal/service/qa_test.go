package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docqa/internal/answer"
	"docqa/internal/model"
	"docqa/internal/state"
)

type qaFixture struct {
	ws      *state.Workspace
	remote  *mockAnswerer
	notify  *recordingNotifier
	metrics *countingRecorder
	svc     *qaService
}

func newQAFixture() *qaFixture {
	f := &qaFixture{
		ws:      newWorkspace(),
		remote:  new(mockAnswerer),
		notify:  &recordingNotifier{},
		metrics: newCountingRecorder(),
	}
	f.svc = NewQAService(QADeps{
		Workspace: f.ws,
		Answerer:  f.remote,
		Notifier:  f.notify,
		Metrics:   f.metrics,
	}).(*qaService)
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC) }
	return f
}

func TestQAService_Ask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		credential  string
		docs        []model.Document
		documentID  string
		question    string
		setup       func(m *mockAnswerer)
		wantErrIs   error
		wantCredErr bool
		wantToast   string
		wantOutcome string
	}{
		{
			name:        "missing credential checked first",
			docs:        nil,
			documentID:  "missing",
			question:    "anything",
			wantErrIs:   ErrCredentialMissing,
			wantCredErr: true,
			wantToast:   ErrCredentialMissing.Error(),
			wantOutcome: "credential",
		},
		{
			name:        "unknown document",
			credential:  "sk-live",
			documentID:  "missing",
			question:    "q",
			wantErrIs:   ErrNotFound,
			wantToast:   ErrNotFound.Error(),
			wantOutcome: "rejected",
		},
		{
			name:        "blank content",
			credential:  "sk-live",
			docs:        []model.Document{{ID: "d1", Name: "scan.pdf", Content: " \n "}},
			documentID:  "d1",
			question:    "q",
			wantErrIs:   ErrNoExtractableContent,
			wantToast:   ErrNoExtractableContent.Error(),
			wantOutcome: "rejected",
		},
		{
			name:        "blank question",
			credential:  "sk-live",
			docs:        []model.Document{{ID: "d1", Name: "a.txt", Content: "text"}},
			documentID:  "d1",
			question:    "   ",
			wantErrIs:   ErrQuestionRequired,
			wantToast:   ErrQuestionRequired.Error(),
			wantOutcome: "rejected",
		},
		{
			name:        "question too long",
			credential:  "sk-live",
			docs:        []model.Document{{ID: "d1", Name: "a.txt", Content: "text"}},
			documentID:  "d1",
			question:    strings.Repeat("x", 501),
			wantErrIs:   ErrQuestionTooLong,
			wantToast:   ErrQuestionTooLong.Error(),
			wantOutcome: "rejected",
		},
		{
			name:       "remote rejects credential",
			credential: "sk-old",
			docs:       []model.Document{{ID: "d1", Name: "a.txt", Content: "text"}},
			documentID: "d1",
			question:   "q",
			setup: func(m *mockAnswerer) {
				m.On("Answer", mock.Anything, mock.Anything).Return("", &answer.Error{
					StatusCode: 401, Message: "Incorrect API key provided", Err: answer.ErrInvalidCredential,
				})
			},
			wantErrIs:   answer.ErrInvalidCredential,
			wantCredErr: true,
			wantToast:   "Incorrect API key provided",
			wantOutcome: "credential",
		},
		{
			name:       "remote message shown verbatim",
			credential: "sk-live",
			docs:       []model.Document{{ID: "d1", Name: "a.txt", Content: "text"}},
			documentID: "d1",
			question:   "q",
			setup: func(m *mockAnswerer) {
				m.On("Answer", mock.Anything, mock.Anything).Return("", &answer.Error{StatusCode: 429, Message: "Rate limit reached"})
			},
			wantToast:   "Rate limit reached",
			wantOutcome: "remote_error",
		},
		{
			name:       "zero choices",
			credential: "sk-live",
			docs:       []model.Document{{ID: "d1", Name: "a.txt", Content: "text"}},
			documentID: "d1",
			question:   "q",
			setup: func(m *mockAnswerer) {
				m.On("Answer", mock.Anything, mock.Anything).Return("", answer.ErrNoChoices)
			},
			wantErrIs:   answer.ErrNoChoices,
			wantToast:   answer.ErrNoChoices.Error(),
			wantOutcome: "remote_error",
		},
		{
			name:       "transport failure falls back to generic message",
			credential: "sk-live",
			docs:       []model.Document{{ID: "d1", Name: "a.txt", Content: "text"}},
			documentID: "d1",
			question:   "q",
			setup: func(m *mockAnswerer) {
				m.On("Answer", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: connection refused"))
			},
			wantToast:   "Failed to get answer",
			wantOutcome: "remote_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQAFixture()
			f.ws.SetCredential(ctx, tt.credential)
			for _, d := range tt.docs {
				f.ws.AddDocument(ctx, d)
			}
			if tt.setup != nil {
				tt.setup(f.remote)
			}

			pair, err := f.svc.Ask(ctx, tt.documentID, tt.question)

			require.Error(t, err)
			assert.Nil(t, pair)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}
			var credErr *CredentialError
			assert.Equal(t, tt.wantCredErr, errors.As(err, &credErr))
			assert.Equal(t, []shown{{model.SeverityError, tt.wantToast}}, f.notify.all())
			assert.Equal(t, 1, f.metrics.answers[tt.wantOutcome])
			assert.Empty(t, f.ws.History())
			if tt.setup == nil {
				f.remote.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestQAService_AskSuccessPrependsHistory(t *testing.T) {
	ctx := context.Background()
	f := newQAFixture()
	f.ws.SetCredential(ctx, "sk-live")
	f.ws.AddDocument(ctx, model.Document{ID: "d1", Name: "report.pdf", Content: "Revenue was 42."})
	f.ws.PrependQA(ctx, model.QAPair{ID: "old", DocumentID: "d1"})

	f.remote.On("Answer", mock.Anything, answer.Request{
		Credential:   "sk-live",
		DocumentName: "report.pdf",
		Content:      "Revenue was 42.",
		Question:     "What was revenue?",
	}).Return("42.", nil).Once()

	pair, err := f.svc.Ask(ctx, "d1", "What was revenue?")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.ID)
	assert.Equal(t, "d1", pair.DocumentID)
	assert.Equal(t, "42.", pair.Answer)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), pair.Timestamp)

	history := f.ws.History()
	require.Len(t, history, 2)
	assert.Equal(t, pair.ID, history[0].ID)
	assert.Equal(t, "old", history[1].ID)
	assert.Empty(t, f.notify.all())
	assert.Equal(t, 1, f.metrics.answers["answered"])
	f.remote.AssertExpectations(t)
}

func seedHistory(f *qaFixture) {
	ctx := context.Background()
	f.ws.PrependQA(ctx, model.QAPair{ID: "1", DocumentID: "d1", Question: "What is Go?", Answer: "A language."})
	f.ws.PrependQA(ctx, model.QAPair{ID: "2", DocumentID: "d2", Question: "Who wrote it?", Answer: "The GOLANG team."})
	f.ws.PrependQA(ctx, model.QAPair{ID: "3", DocumentID: "d1", Question: "Is it fast?", Answer: "Yes."})
}

func ids(pairs []model.QAPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.ID
	}
	return out
}

func TestQAService_Search(t *testing.T) {
	f := newQAFixture()
	seedHistory(f)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"3", "2", "1"}},
		{"   ", []string{"3", "2", "1"}},
		{"go", []string{"2", "1"}},
		{"GOLANG", []string{"2"}},
		{"yes.", []string{"3"}},
		{"go ", []string{}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(f.svc.Search(ctx, tt.query)))
		})
	}
}

func TestQAService_HistoryForDocument(t *testing.T) {
	f := newQAFixture()
	seedHistory(f)
	ctx := context.Background()

	assert.Equal(t, []string{"3", "1"}, ids(f.svc.HistoryForDocument(ctx, "d1")))
	assert.Empty(t, f.svc.HistoryForDocument(ctx, "nope"))
	assert.Len(t, f.svc.History(ctx), 3)
}

func TestQAService_Export(t *testing.T) {
	f := newQAFixture()
	seedHistory(f)

	exp, err := f.svc.Export(context.Background(), time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("W", -3*3600)))
	require.NoError(t, err)

	assert.Equal(t, "qa-history-2025-01-01.json", exp.FileName)
	assert.True(t, strings.HasPrefix(string(exp.Data), "[\n  {\n    \"id\": \"3\""))
	var decoded []model.QAPair
	require.NoError(t, json.Unmarshal(exp.Data, &decoded))
	assert.Equal(t, []string{"3", "2", "1"}, ids(decoded))
	assert.Equal(t, []shown{{model.SeveritySuccess, "Q&A history exported successfully"}}, f.notify.all())
}

func TestQAService_ExportEmpty(t *testing.T) {
	f := newQAFixture()
	exp, err := f.svc.Export(context.Background(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(exp.Data))
}
