package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docqa/internal/answer"
	"docqa/internal/model"
	"docqa/internal/state"
	"docqa/internal/validation"
)

const failedAnswerMessage = "Failed to get answer"

// Export is a downloadable copy of the Q&A history.
type Export struct {
	FileName string
	Data     []byte
}

// QAService asks questions about documents and keeps the history.
type QAService interface {
	// Ask checks the credential, the document, its content and the question, in that order,
	// then asks the remote and prepends the answer to the history.
	Ask(ctx context.Context, documentID, question string) (*model.QAPair, error)

	// History returns every pair, newest first.
	History(ctx context.Context) []model.QAPair

	HistoryForDocument(ctx context.Context, documentID string) []model.QAPair

	// Search matches query case-insensitively against questions and answers. A blank query
	// returns the whole history.
	Search(ctx context.Context, query string) []model.QAPair

	// Export renders the history as indented JSON named after the day of now.
	Export(ctx context.Context, now time.Time) (*Export, error)
}

type QADeps struct {
	Workspace *state.Workspace
	Answerer  Answerer
	Notifier  Notifier
	Metrics   Recorder
	Logger    *zap.Logger
}

type qaService struct {
	ws      *state.Workspace
	remote  Answerer
	notify  Notifier
	metrics Recorder
	log     *zap.Logger
	now     func() time.Time
}

func NewQAService(d QADeps) QAService {
	if d.Metrics == nil {
		d.Metrics = nopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &qaService{
		ws:      d.Workspace,
		remote:  d.Answerer,
		notify:  d.Notifier,
		metrics: d.Metrics,
		log:     d.Logger.Named("qa"),
		now:     time.Now,
	}
}

func (s *qaService) Ask(ctx context.Context, documentID, question string) (*model.QAPair, error) {
	pair, err := s.ask(ctx, documentID, question)
	if err != nil {
		s.notify.Show(model.SeverityError, askMessage(err))
		s.metrics.AnswerFinished(askOutcome(err))
		s.log.Warn("question failed", zap.String("document_id", documentID), zap.Error(err))
		return nil, err
	}
	s.metrics.AnswerFinished("answered")
	return pair, nil
}

func (s *qaService) ask(ctx context.Context, documentID, question string) (*model.QAPair, error) {
	credential := s.ws.Credential()
	if credential == "" {
		return nil, &CredentialError{Err: ErrCredentialMissing}
	}
	doc, ok := s.ws.Document(documentID)
	if !ok {
		return nil, ErrNotFound
	}
	if isBlank(doc.Content) {
		return nil, ErrNoExtractableContent
	}
	if isBlank(question) {
		return nil, ErrQuestionRequired
	}
	if utf8.RuneCountInString(question) > validation.MaxQuestionLength {
		return nil, ErrQuestionTooLong
	}

	text, err := s.remote.Answer(ctx, answer.Request{
		Credential:   credential,
		DocumentName: doc.Name,
		Content:      doc.Content,
		Question:     question,
	})
	if err != nil {
		if errors.Is(err, answer.ErrInvalidCredential) {
			return nil, &CredentialError{Err: err}
		}
		return nil, fmt.Errorf("ask remote: %w", err)
	}

	pair := model.QAPair{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Question:   question,
		Answer:     text,
		Timestamp:  s.now().UTC(),
	}
	s.ws.PrependQA(ctx, pair)
	return &pair, nil
}

// askMessage picks the notification text: the remote's own message when it sent one.
func askMessage(err error) string {
	var (
		apiErr  *answer.Error
		credErr *CredentialError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &credErr):
		return credErr.Error()
	case errors.Is(err, answer.ErrNoChoices):
		return answer.ErrNoChoices.Error()
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNoExtractableContent),
		errors.Is(err, ErrQuestionRequired),
		errors.Is(err, ErrQuestionTooLong):
		return err.Error()
	default:
		return failedAnswerMessage
	}
}

func askOutcome(err error) string {
	var credErr *CredentialError
	switch {
	case errors.As(err, &credErr):
		return "credential"
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNoExtractableContent),
		errors.Is(err, ErrQuestionRequired),
		errors.Is(err, ErrQuestionTooLong):
		return "rejected"
	default:
		return "remote_error"
	}
}

func (s *qaService) History(_ context.Context) []model.QAPair {
	return s.ws.History()
}

func (s *qaService) HistoryForDocument(_ context.Context, documentID string) []model.QAPair {
	return slices.DeleteFunc(s.ws.History(), func(p model.QAPair) bool { return p.DocumentID != documentID })
}

func (s *qaService) Search(_ context.Context, query string) []model.QAPair {
	history := s.ws.History()
	if isBlank(query) {
		return history
	}
	q := strings.ToLower(query)
	return slices.DeleteFunc(history, func(p model.QAPair) bool {
		return !strings.Contains(strings.ToLower(p.Question), q) && !strings.Contains(strings.ToLower(p.Answer), q)
	})
}

func (s *qaService) Export(_ context.Context, now time.Time) (*Export, error) {
	data, err := json.MarshalIndent(s.ws.History(), "", "  ")
	if err != nil {
		s.notify.Show(model.SeverityError, "Failed to export Q&A history")
		return nil, fmt.Errorf("encode history: %w", err)
	}
	s.notify.Show(model.SeveritySuccess, "Q&A history exported successfully")
	return &Export{
		FileName: fmt.Sprintf("qa-history-%s.json", now.UTC().Format("2006-01-02")),
		Data:     data,
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
