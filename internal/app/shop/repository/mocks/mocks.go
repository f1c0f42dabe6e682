package mocks

import (
	"context"

	"orbitpaws/internal/app/shop/entity"

	"github.com/stretchr/testify/mock"
)

// MockStateRepository мок для StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) GetFilters(ctx context.Context, sessionID string) (*entity.FiltersState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FiltersState), args.Error(1)
}

func (m *MockStateRepository) SaveFilters(ctx context.Context, sessionID string, filters entity.FiltersState) error {
	args := m.Called(ctx, sessionID, filters)
	return args.Error(0)
}

func (m *MockStateRepository) GetViewMode(ctx context.Context, sessionID string) (entity.ViewMode, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(entity.ViewMode), args.Error(1)
}

func (m *MockStateRepository) SaveViewMode(ctx context.Context, sessionID string, view entity.ViewMode) error {
	args := m.Called(ctx, sessionID, view)
	return args.Error(0)
}

func (m *MockStateRepository) GetCart(ctx context.Context, sessionID string) (*entity.CartState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CartState), args.Error(1)
}

func (m *MockStateRepository) SaveCart(ctx context.Context, sessionID string, cart entity.CartState) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

func (m *MockStateRepository) DeleteCart(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockStateRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) LoadAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
