package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/pkg/logger"
	"orbitpaws/pkg/metrics"
)

// Ключи персистентного хранилища (внешний интерфейс)
// Полный ключ Redis: "<sessionID>:<suffix>"
const (
	filtersKeySuffix  = "orbitpaws:filters"
	viewModeKeySuffix = "orbitpaws:viewMode"
	cartKeySuffix     = "orbitpaws:cart:v1"
)

// stateRepository реализует StateRepository поверх Redis
// Поврежденные сохраненные значения трактуются как отсутствие состояния:
// чтение деградирует к nil, никогда не возвращает ошибку парсинга наружу
type stateRepository struct {
	client *redis.Client
	ttl    time.Duration // TTL сохраненного состояния сессии
}

// NewStateRepository создает Redis-хранилище состояния витрины
func NewStateRepository(client *redis.Client, ttl time.Duration) StateRepository {
	return &stateRepository{client: client, ttl: ttl}
}

// NewRedisClient подключается к Redis с проверкой соединения
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (r *stateRepository) GetFilters(ctx context.Context, sessionID string) (*entity.FiltersState, error) {
	var filters entity.FiltersState
	found, err := r.getJSON(ctx, sessionID, filtersKeySuffix, &filters)
	if err != nil || !found {
		return nil, err
	}
	return &filters, nil
}

func (r *stateRepository) SaveFilters(ctx context.Context, sessionID string, filters entity.FiltersState) error {
	return r.setJSON(ctx, sessionID, filtersKeySuffix, filters)
}

func (r *stateRepository) GetViewMode(ctx context.Context, sessionID string) (entity.ViewMode, error) {
	var view entity.ViewMode
	found, err := r.getJSON(ctx, sessionID, viewModeKeySuffix, &view)
	if err != nil || !found {
		return "", err
	}
	if view != entity.ViewGrid && view != entity.ViewList {
		// Поврежденное значение равносильно отсутствию сохраненного состояния
		return "", nil
	}
	return view, nil
}

func (r *stateRepository) SaveViewMode(ctx context.Context, sessionID string, view entity.ViewMode) error {
	return r.setJSON(ctx, sessionID, viewModeKeySuffix, view)
}

func (r *stateRepository) GetCart(ctx context.Context, sessionID string) (*entity.CartState, error) {
	var state entity.CartState
	found, err := r.getJSON(ctx, sessionID, cartKeySuffix, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (r *stateRepository) SaveCart(ctx context.Context, sessionID string, state entity.CartState) error {
	return r.setJSON(ctx, sessionID, cartKeySuffix, state)
}

func (r *stateRepository) DeleteCart(ctx context.Context, sessionID string) error {
	timer := metrics.NewRedisTimer("shop-service", metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, r.key(sessionID, cartKeySuffix)).Err(); err != nil {
		metrics.RecordRedisError("shop-service", metrics.RedisOpDel)
		return fmt.Errorf("failed to delete cart state: %w", err)
	}
	return nil
}

func (r *stateRepository) Close() error {
	return r.client.Close()
}

func (r *stateRepository) key(sessionID, suffix string) string {
	return sessionID + ":" + suffix
}

// getJSON читает и десериализует значение ключа
// Возвращает found=false при отсутствии ключа и при поврежденном JSON
func (r *stateRepository) getJSON(ctx context.Context, sessionID, suffix string, dest interface{}) (bool, error) {
	timer := metrics.NewRedisTimer("shop-service", metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, r.key(sessionID, suffix)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("shop-service", suffix)
			return false, nil
		}
		metrics.RecordRedisError("shop-service", metrics.RedisOpGet)
		return false, fmt.Errorf("failed to get %s: %w", suffix, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Malformed persisted data: деградируем к "нет сохраненного состояния"
		logger.Warn().
			Str("key", suffix).
			Err(err).
			Msg("Malformed persisted state, falling back to defaults")
		return false, nil
	}

	metrics.RecordCacheHit("shop-service", suffix)
	return true, nil
}

func (r *stateRepository) setJSON(ctx context.Context, sessionID, suffix string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", suffix, err)
	}

	timer := metrics.NewRedisTimer("shop-service", metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, r.key(sessionID, suffix), data, r.ttl).Err(); err != nil {
		metrics.RecordRedisError("shop-service", metrics.RedisOpSet)
		return fmt.Errorf("failed to set %s: %w", suffix, err)
	}
	return nil
}
