package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docqa/internal/repository"
)

type MockStateRepository struct {
	mock.Mock
}

var _ repository.StateRepository = (*MockStateRepository)(nil)

func (m *MockStateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStateRepository) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStateRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStateRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
