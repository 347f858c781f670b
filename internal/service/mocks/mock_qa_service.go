package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docqa/internal/model"
	"docqa/internal/service"
)

type MockQAService struct {
	mock.Mock
}

var _ service.QAService = (*MockQAService)(nil)

func (m *MockQAService) Ask(ctx context.Context, documentID, question string) (*model.QAPair, error) {
	args := m.Called(ctx, documentID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QAPair), args.Error(1)
}

func (m *MockQAService) History(ctx context.Context) []model.QAPair {
	args := m.Called(ctx)
	return args.Get(0).([]model.QAPair)
}

func (m *MockQAService) HistoryForDocument(ctx context.Context, documentID string) []model.QAPair {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]model.QAPair)
}

func (m *MockQAService) Search(ctx context.Context, query string) []model.QAPair {
	args := m.Called(ctx, query)
	return args.Get(0).([]model.QAPair)
}

func (m *MockQAService) Export(ctx context.Context, now time.Time) (*service.Export, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}
