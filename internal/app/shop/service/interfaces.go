package service

import (
	"context"
	"net/url"

	"orbitpaws/internal/app/shop/entity"
)

type ShopServiceInterface interface {
	Mount(sessionID string) entity.ShopSnapshot
	ResolveSource(ctx context.Context, sessionID string, values url.Values) (entity.ShopSnapshot, error)
	Snapshot(sessionID string) (entity.ShopSnapshot, error)
	SetQuery(sessionID, query string) (entity.ShopSnapshot, error)
	SetSort(sessionID string, sort entity.SortKey) (entity.ShopSnapshot, error)
	SetViewMode(ctx context.Context, sessionID string, view entity.ViewMode) (entity.ShopSnapshot, error)
	SetFilters(ctx context.Context, sessionID string, filters entity.FiltersState) (entity.ShopSnapshot, error)
	ClearFilters(ctx context.Context, sessionID string) (entity.ShopSnapshot, error)
	RemoveChip(ctx context.Context, sessionID, key string) (entity.ShopSnapshot, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, sessionID string) entity.CartResponse
	Add(ctx context.Context, sessionID, productID, variantID string, qty int)
	Remove(ctx context.Context, sessionID, lineID string)
	SetQty(ctx context.Context, sessionID, lineID string, qty int)
	Clear(ctx context.Context, sessionID string)
}
