package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docqa/internal/model"
	"docqa/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) Upload(ctx context.Context, f service.UploadFile) (*model.Document, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) UploadBatch(ctx context.Context, files []service.UploadFile) []service.UploadResult {
	args := m.Called(ctx, files)
	return args.Get(0).([]service.UploadResult)
}

func (m *MockDocumentService) List(ctx context.Context) []model.Document {
	args := m.Called(ctx)
	return args.Get(0).([]model.Document)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Select(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Selected(ctx context.Context) *model.Document {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Document)
}

func (m *MockDocumentService) Uploads(ctx context.Context) []model.UploadProgress {
	args := m.Called(ctx)
	return args.Get(0).([]model.UploadProgress)
}

func (m *MockDocumentService) Original(ctx context.Context, id string) (*service.Original, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Original), args.Error(1)
}
