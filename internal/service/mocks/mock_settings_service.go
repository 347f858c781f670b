package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docqa/internal/model"
	"docqa/internal/service"
)

type MockSettingsService struct {
	mock.Mock
}

var _ service.SettingsService = (*MockSettingsService)(nil)

func (m *MockSettingsService) Get(ctx context.Context) service.Settings {
	args := m.Called(ctx)
	return args.Get(0).(service.Settings)
}

func (m *MockSettingsService) SetCredential(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSettingsService) ClearCredential(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSettingsService) HasCredential(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockSettingsService) MaskedCredential(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockSettingsService) Theme(ctx context.Context) model.Theme {
	args := m.Called(ctx)
	return args.Get(0).(model.Theme)
}

func (m *MockSettingsService) ToggleTheme(ctx context.Context) model.Theme {
	args := m.Called(ctx)
	return args.Get(0).(model.Theme)
}
