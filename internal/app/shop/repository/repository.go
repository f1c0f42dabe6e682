package repository

import (
	"context"
	"errors"

	"orbitpaws/internal/app/shop/entity"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// StateRepository - персистентное key-value хранилище состояния витрины
// Пространство ключей разделено по сессиям и по назначению
// (фильтры, режим отображения, корзина) - коллизий между сторами нет.
// Отсутствие сохраненного состояния не является ошибкой
type StateRepository interface {
	GetFilters(ctx context.Context, sessionID string) (*entity.FiltersState, error)
	SaveFilters(ctx context.Context, sessionID string, filters entity.FiltersState) error
	GetViewMode(ctx context.Context, sessionID string) (entity.ViewMode, error)
	SaveViewMode(ctx context.Context, sessionID string, view entity.ViewMode) error
	GetCart(ctx context.Context, sessionID string) (*entity.CartState, error)
	SaveCart(ctx context.Context, sessionID string, state entity.CartState) error
	DeleteCart(ctx context.Context, sessionID string) error
	Close() error
}

// ProductRepository загружает каталог из внешнего источника
// Каталог читается один раз при старте полным сканированием
type ProductRepository interface {
	LoadAll(ctx context.Context) ([]entity.Product, error)
}
