package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/internal/app/shop/repository"
	"orbitpaws/internal/app/shop/util"
	"orbitpaws/pkg/logger"
	"orbitpaws/pkg/metrics"
)

// Типы событий корзины для Kafka
const (
	EventCartLineAdded   = "CART_LINE_ADDED"
	EventCartLineRemoved = "CART_LINE_REMOVED"
	EventCartQtySet      = "CART_QTY_SET"
	EventCartCleared     = "CART_CLEARED"
)

// Порог бесплатной доставки и базовая ставка
const (
	freeShippingThreshold = 80.0
	shippingFlatRate      = 7.95
)

// CartService обрабатывает бизнес-логику корзины
// Владеет состоянием корзины каждой сессии; хранилище - зеркало,
// in-memory состояние остается авторитетным при сбоях записи
type CartService struct {
	mu        sync.Mutex
	carts     map[string]*cartSession
	catalog   *catalog.Catalog
	stateRepo repository.StateRepository
	producer  util.MessagePublisher
}

// cartSession - корзина одной сессии
// hydrated переключается в true после единственной сверки с хранилищем
// и открывает персист-при-изменении (гидрационное чтение не перезаписывается)
type cartSession struct {
	state    entity.CartState
	hydrated bool
}

// NewCartService создает сервис корзины с внедрением зависимостей
// producer может быть nil: события тогда не публикуются
func NewCartService(cat *catalog.Catalog, stateRepo repository.StateRepository, producer util.MessagePublisher) *CartService {
	return &CartService{
		carts:     make(map[string]*cartSession),
		catalog:   cat,
		stateRepo: stateRepo,
		producer:  producer,
	}
}

// MakeLineID детерминированно выводит идентификатор позиции
// productId либо productId::variantId - инвариант уникальности позиций
func MakeLineID(productID, variantID string) string {
	if variantID != "" {
		return productID + "::" + variantID
	}
	return productID
}

// Get возвращает проекцию корзины для слоя представления
// Позиции с неизвестным productId скрываются из resolved-представления
// и итогов, но из сохраненного состояния не удаляются: восстановление
// товара в каталоге вернет позицию
func (s *CartService) Get(ctx context.Context, sessionID string) entity.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.ensure(ctx, sessionID)

	resolved := make([]entity.ResolvedCartLine, 0, len(cart.state.Lines))
	subtotal := 0.0
	for _, line := range cart.state.Lines {
		product, ok := s.catalog.ByID(line.ProductID)
		if !ok {
			metrics.CartLinesDropped.Inc()
			continue
		}

		unitPrice := product.Price
		stock := product.Stock
		if line.VariantID != "" {
			for _, v := range product.Variants {
				if v.ID == line.VariantID {
					unitPrice += v.PriceDelta
					stock = v.Stock
					break
				}
			}
		}

		lineTotal := unitPrice * float64(line.Qty)
		subtotal += lineTotal
		resolved = append(resolved, entity.ResolvedCartLine{
			CartLine:   line,
			Product:    product,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
			OutOfStock: stock == 0,
		})
	}

	shipping := shippingFlatRate
	if subtotal >= freeShippingThreshold || subtotal == 0 {
		shipping = 0
	}

	lines := make([]entity.CartLine, len(cart.state.Lines))
	copy(lines, cart.state.Lines)

	return entity.CartResponse{
		Hydrated:   cart.hydrated,
		Lines:      lines,
		Resolved:   resolved,
		TotalItems: cart.state.TotalItems(),
		Subtotal:   subtotal,
		Shipping:   shipping,
		Total:      subtotal + shipping,
	}
}

// Add добавляет позицию или увеличивает количество существующей
// Существование productId не проверяется: валидация - забота вызывающего
func (s *CartService) Add(ctx context.Context, sessionID, productID, variantID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	lineID := MakeLineID(productID, variantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.ensure(ctx, sessionID)

	merged := false
	for i := range cart.state.Lines {
		if cart.state.Lines[i].LineID == lineID {
			cart.state.Lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		// Порядок существующих позиций сохраняется, новые добавляются в конец
		cart.state.Lines = append(cart.state.Lines, entity.CartLine{
			LineID:    lineID,
			ProductID: productID,
			VariantID: variantID,
			Qty:       qty,
		})
	}

	metrics.CartOperations.WithLabelValues("add").Inc()
	s.persist(ctx, sessionID, cart)
	s.publishEvent(ctx, sessionID, entity.CartEvent{
		EventType:  EventCartLineAdded,
		SessionID:  sessionID,
		LineID:     lineID,
		ProductID:  productID,
		VariantID:  variantID,
		Qty:        qty,
		TotalItems: cart.state.TotalItems(),
	})
}

// Remove удаляет позицию; отсутствие позиции - no-op, не ошибка
func (s *CartService) Remove(ctx context.Context, sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.ensure(ctx, sessionID)

	next := cart.state.Lines[:0:0]
	removed := false
	for _, line := range cart.state.Lines {
		if line.LineID == lineID {
			removed = true
			continue
		}
		next = append(next, line)
	}
	if !removed {
		return
	}
	cart.state.Lines = next

	metrics.CartOperations.WithLabelValues("remove").Inc()
	s.persist(ctx, sessionID, cart)
	s.publishEvent(ctx, sessionID, entity.CartEvent{
		EventType:  EventCartLineRemoved,
		SessionID:  sessionID,
		LineID:     lineID,
		TotalItems: cart.state.TotalItems(),
	})
}

// SetQty перезаписывает количество позиции, клампя снизу до 1
// Отсутствие позиции - no-op
func (s *CartService) SetQty(ctx context.Context, sessionID, lineID string, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.ensure(ctx, sessionID)

	found := false
	for i := range cart.state.Lines {
		if cart.state.Lines[i].LineID == lineID {
			cart.state.Lines[i].Qty = qty
			found = true
			break
		}
	}
	if !found {
		return
	}

	metrics.CartOperations.WithLabelValues("set_qty").Inc()
	s.persist(ctx, sessionID, cart)
	s.publishEvent(ctx, sessionID, entity.CartEvent{
		EventType:  EventCartQtySet,
		SessionID:  sessionID,
		LineID:     lineID,
		Qty:        qty,
		TotalItems: cart.state.TotalItems(),
	})
}

// Clear опустошает корзину и стирает сохраненное состояние
func (s *CartService) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.ensure(ctx, sessionID)
	cart.state = entity.CartState{}

	if err := s.stateRepo.DeleteCart(ctx, sessionID); err != nil {
		// Состояние в памяти авторитетно, сбой хранилища не критичен
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to clear persisted cart")
	}

	metrics.CartOperations.WithLabelValues("clear").Inc()
	s.publishEvent(ctx, sessionID, entity.CartEvent{
		EventType: EventCartCleared,
		SessionID: sessionID,
	})
}

// Forget выбрасывает in-memory корзину сессии (вызывается janitor-ом)
// Сохраненное состояние не трогается
func (s *CartService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// ensure гидрирует корзину сессии при первом обращении
// Начальное состояние всегда пустое; хранилище опрашивается ровно один раз
func (s *CartService) ensure(ctx context.Context, sessionID string) *cartSession {
	if cart, ok := s.carts[sessionID]; ok {
		return cart
	}

	cart := &cartSession{}
	saved, err := s.stateRepo.GetCart(ctx, sessionID)
	if err != nil {
		// Недоступное хранилище равносильно отсутствию сохраненного состояния
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to read persisted cart")
	} else if saved != nil && saved.Lines != nil {
		cart.state = *saved
	}
	cart.hydrated = true

	s.carts[sessionID] = cart
	return cart
}

// persist зеркалирует состояние корзины в хранилище
// Сбои записи глотаются: сессия продолжает работать из памяти
func (s *CartService) persist(ctx context.Context, sessionID string, cart *cartSession) {
	if !cart.hydrated {
		return
	}
	if err := s.stateRepo.SaveCart(ctx, sessionID, cart.state); err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to persist cart")
	}
}

// publishEvent отправляет событие корзины в Kafka
// Ключ - sessionID: события одной корзины попадают в одну партицию
func (s *CartService) publishEvent(ctx context.Context, sessionID string, event entity.CartEvent) {
	if s.producer == nil {
		return
	}
	event.Timestamp = time.Now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal cart event")
		return
	}

	if err := s.producer.PublishMessage(ctx, sessionID, data); err != nil {
		logger.Warn().Err(err).Str("event_type", event.EventType).Msg("Failed to publish cart event")
	}
}
