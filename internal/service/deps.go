package service

import (
	"context"

	"docqa/internal/answer"
	"docqa/internal/extract"
	"docqa/internal/model"
)

// Extractor turns uploaded bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, f extract.File) (string, error)
}

// ProgressTracker drives the upload progress records.
type ProgressTracker interface {
	Reserve(fileName string) string
	Begin(id string) bool
	Complete(id string)
	Fail(id, message string)
	List() []model.UploadProgress
}

// Notifier shows user-facing messages.
type Notifier interface {
	Show(severity model.Severity, message string) string
}

// Answerer is the remote question-answering endpoint.
type Answerer interface {
	Answer(ctx context.Context, req answer.Request) (string, error)
	ValidateCredential(ctx context.Context, credential string) (bool, error)
}

// Recorder receives service-level counters. *metrics.Metrics satisfies it.
type Recorder interface {
	UploadStarted()
	UploadFinished(status string)
	AnswerFinished(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) UploadStarted()        {}
func (nopRecorder) UploadFinished(string) {}
func (nopRecorder) AnswerFinished(string) {}
