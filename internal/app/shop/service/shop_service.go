package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/internal/app/shop/repository"
	"orbitpaws/internal/app/shop/urlstate"
	"orbitpaws/internal/app/shop/util"
	"orbitpaws/pkg/logger"
	"orbitpaws/pkg/metrics"
)

var ErrSessionNotFound = errors.New("browse session not found")

// ShopService владеет состоянием просмотра витрины всех активных сессий
// Единственный источник истины - память сервиса; URL и хранилище - зеркала
type ShopService struct {
	mu       sync.RWMutex
	sessions map[string]*browseSession

	catalog   *catalog.Catalog
	stateRepo repository.StateRepository

	searchDebounce time.Duration
	loadingDelay   time.Duration
	sessionTTL     time.Duration
}

// browseSession - состояние просмотра одной сессии
// Мьютекс сессии берется после мьютекса сервиса, никогда наоборот:
// колбэки таймеров берут только мьютекс сессии
type browseSession struct {
	mu sync.Mutex
	id string

	phase   entity.SessionPhase
	query   string
	sort    entity.SortKey
	view    entity.ViewMode
	filters entity.FiltersState

	// effectiveQuery отстает от query на интервал debounce:
	// результаты пересчитываются по нему, не по сырому вводу
	effectiveQuery string

	isLoading    bool
	searchTimer  *util.Debouncer
	loadingTimer *util.Debouncer

	// addressBar - последний query string, спроецированный в адресную строку
	// Повторная проекция идентичной строки пропускается (replace, не push)
	addressBar   string
	replaceCount int

	lastActive time.Time
}

// NewShopService создает сервис витрины с внедрением зависимостей
func NewShopService(cat *catalog.Catalog, stateRepo repository.StateRepository, searchDebounce, loadingDelay, sessionTTL time.Duration) *ShopService {
	return &ShopService{
		sessions:       make(map[string]*browseSession),
		catalog:        cat,
		stateRepo:      stateRepo,
		searchDebounce: searchDebounce,
		loadingDelay:   loadingDelay,
		sessionTTL:     sessionTTL,
	}
}

// Mount создает сессию просмотра в фазе PRE_HYDRATION
// До ResolveSource сессия показывает дефолтное состояние и ничего не персистит
func (s *ShopService) Mount(sessionID string) entity.ShopSnapshot {
	bounds := s.catalog.Bounds()

	session := &browseSession{
		id:           sessionID,
		phase:        entity.PhasePreHydration,
		sort:         entity.SortPopular,
		view:         entity.ViewGrid,
		filters:      defaultFilters(bounds),
		searchTimer:  util.NewDebouncer(s.searchDebounce),
		loadingTimer: util.NewDebouncer(s.loadingDelay),
		lastActive:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[sessionID] = session
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.ShopSessionsActive.Set(float64(count))
	logger.Debug().Str("session_id", sessionID).Msg("Browse session mounted")

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.snapshotLocked(session)
}

// ResolveSource выполняет одноразовый выбор источника истины первой загрузки
// Любой распознанный ключ в query string делает URL авторитетным целиком;
// иначе состояние восстанавливается из хранилища. Повторный вызов - no-op
func (s *ShopService) ResolveSource(ctx context.Context, sessionID string, values url.Values) (entity.ShopSnapshot, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return entity.ShopSnapshot{}, err
	}
	bounds := s.catalog.Bounds()

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.phase != entity.PhasePreHydration {
		return s.snapshotLocked(session), nil
	}
	session.phase = entity.PhaseDecidingSource
	session.lastActive = time.Now()
	session.addressBar = values.Encode()

	if urlstate.HasShopParams(values) {
		state, degraded := urlstate.Decode(values, bounds)
		for _, field := range degraded {
			metrics.ShopURLDecodeDegraded.WithLabelValues(field).Inc()
		}
		if len(degraded) > 0 {
			logger.Warn().Str("session_id", sessionID).Strs("fields", degraded).Msg("URL state fields degraded to defaults")
		}

		session.query = state.Query
		session.effectiveQuery = state.Query
		session.sort = state.Sort
		session.view = state.View
		session.filters = state.Filters

		// URL победил: сохраненное состояние перезаписывается без слияния
		s.persistFilters(ctx, session)
		s.persistView(ctx, session)
	} else {
		if saved, repoErr := s.stateRepo.GetFilters(ctx, sessionID); repoErr != nil {
			logger.Warn().Err(repoErr).Str("session_id", sessionID).Msg("Failed to read persisted filters")
		} else if saved != nil {
			normalized := urlstate.Normalize(urlstate.State{Sort: session.sort, View: session.view, Filters: *saved}, bounds)
			session.filters = normalized.Filters
		}

		if view, repoErr := s.stateRepo.GetViewMode(ctx, sessionID); repoErr != nil {
			logger.Warn().Err(repoErr).Str("session_id", sessionID).Msg("Failed to read persisted view mode")
		} else if view != "" {
			session.view = view
		}
	}

	session.phase = entity.PhaseSynced
	s.syncURLLocked(session)

	return s.snapshotLocked(session), nil
}

// Snapshot возвращает текущую проекцию состояния витрины с результатами
func (s *ShopService) Snapshot(sessionID string) (entity.ShopSnapshot, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return entity.ShopSnapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastActive = time.Now()
	return s.snapshotLocked(session), nil
}

// SetQuery обновляет поисковый ввод
// URL проецируется немедленно, пересчет результатов откладывается
// на интервал debounce; побеждает последний ввод
func (s *ShopService) SetQuery(sessionID, query string) (entity.ShopSnapshot, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return entity.ShopSnapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.query = query
	session.lastActive = time.Now()
	s.syncURLLocked(session)

	session.searchTimer.Trigger(func() {
		session.mu.Lock()
		defer session.mu.Unlock()
		session.effectiveQuery = session.query
		metrics.ShopSearches.Inc()
		s.pulseLoadingLocked(session)
	})

	return s.snapshotLocked(session), nil
}

// SetSort переключает ключ сортировки
func (s *ShopService) SetSort(sessionID string, sort entity.SortKey) (entity.ShopSnapshot, error) {
	return s.mutate(sessionID, func(session *browseSession) {
		session.sort = sort
	}, nil)
}

// SetViewMode переключает представление каталога и персистит выбор
func (s *ShopService) SetViewMode(ctx context.Context, sessionID string, view entity.ViewMode) (entity.ShopSnapshot, error) {
	return s.mutate(sessionID, func(session *browseSession) {
		session.view = view
	}, func(session *browseSession) {
		s.persistView(ctx, session)
	})
}

// SetFilters перезаписывает состояние фильтров целиком
// Входное состояние нормализуется: цены клампятся к границам каталога
func (s *ShopService) SetFilters(ctx context.Context, sessionID string, filters entity.FiltersState) (entity.ShopSnapshot, error) {
	bounds := s.catalog.Bounds()
	return s.mutate(sessionID, func(session *browseSession) {
		normalized := urlstate.Normalize(urlstate.State{Sort: session.sort, View: session.view, Filters: filters}, bounds)
		session.filters = normalized.Filters
	}, func(session *browseSession) {
		s.persistFilters(ctx, session)
	})
}

// ClearFilters сбрасывает фильтры и поисковый запрос к дефолтам
// Сортировка и представление не затрагиваются
func (s *ShopService) ClearFilters(ctx context.Context, sessionID string) (entity.ShopSnapshot, error) {
	bounds := s.catalog.Bounds()
	return s.mutate(sessionID, func(session *browseSession) {
		session.query = ""
		session.effectiveQuery = ""
		session.searchTimer.Cancel()
		session.filters = defaultFilters(bounds)
	}, func(session *browseSession) {
		s.persistFilters(ctx, session)
	})
}

// RemoveChip снимает один активный фильтр по ключу чипа
// Неизвестный или неактивный ключ - no-op
func (s *ShopService) RemoveChip(ctx context.Context, sessionID, key string) (entity.ShopSnapshot, error) {
	bounds := s.catalog.Bounds()
	return s.mutate(sessionID, func(session *browseSession) {
		switch {
		case key == "q":
			session.query = ""
			session.effectiveQuery = ""
			session.searchTimer.Cancel()
		case strings.HasPrefix(key, "c:"):
			session.filters.Categories = removeCategory(session.filters.Categories, entity.PetCategory(key[2:]))
		case strings.HasPrefix(key, "t:"):
			session.filters.Types = removeType(session.filters.Types, entity.ProductType(key[2:]))
		case key == "price":
			session.filters.Price = [2]float64{bounds.Min, bounds.Max}
		case key == "rating":
			session.filters.MinRating = nil
		case key == "vet":
			session.filters.VetApprovedOnly = false
		}
	}, func(session *browseSession) {
		s.persistFilters(ctx, session)
	})
}

// SweepIdleSessions удаляет сессии, не проявлявшие активности дольше TTL
// Возвращает число удаленных; сохраненное в хранилище состояние не трогается,
// его время жизни ограничивает TTL ключей
func (s *ShopService) SweepIdleSessions(onEvict func(sessionID string)) int {
	cutoff := time.Now().Add(-s.sessionTTL)

	s.mu.Lock()
	var evicted []string
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastActive.Before(cutoff)
		session.mu.Unlock()
		if idle {
			session.searchTimer.Cancel()
			session.loadingTimer.Cancel()
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.ShopSessionsActive.Set(float64(count))
	for _, id := range evicted {
		metrics.ShopSessionsSwept.Inc()
		if onEvict != nil {
			onEvict(id)
		}
	}
	if len(evicted) > 0 {
		logger.Info().Int("count", len(evicted)).Msg("Idle browse sessions swept")
	}
	return len(evicted)
}

// mutate применяет изменение состояния под мьютексом сессии и выполняет
// общую для всех мутаций последовательность: проекция URL, персист,
// импульс индикатора загрузки
func (s *ShopService) mutate(sessionID string, apply func(*browseSession), persist func(*browseSession)) (entity.ShopSnapshot, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return entity.ShopSnapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	apply(session)
	session.lastActive = time.Now()
	s.syncURLLocked(session)
	if persist != nil && session.phase == entity.PhaseSynced {
		persist(session)
	}
	s.pulseLoadingLocked(session)

	return s.snapshotLocked(session), nil
}

func (s *ShopService) session(sessionID string) (*browseSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// syncURLLocked проецирует состояние в адресную строку
// До завершения гидрации проекция не выполняется: иначе дефолтное
// состояние затерло бы URL, который еще не прочитан
func (s *ShopService) syncURLLocked(session *browseSession) {
	if session.phase != entity.PhaseSynced {
		return
	}

	encoded := urlstate.Encode(urlstate.State{
		Query:   session.query,
		Sort:    session.sort,
		View:    session.view,
		Filters: session.filters,
	}, s.catalog.Bounds()).Encode()

	if encoded == session.addressBar {
		return
	}
	session.addressBar = encoded
	session.replaceCount++
	metrics.ShopURLReplaces.Inc()
}

// pulseLoadingLocked включает индикатор загрузки и гасит его после задержки
// Имитирует асинхронную выборку: повторная мутация перезапускает таймер
func (s *ShopService) pulseLoadingLocked(session *browseSession) {
	if session.phase != entity.PhaseSynced {
		return
	}
	session.isLoading = true
	session.loadingTimer.Trigger(func() {
		session.mu.Lock()
		session.isLoading = false
		session.mu.Unlock()
	})
}

func (s *ShopService) persistFilters(ctx context.Context, session *browseSession) {
	if err := s.stateRepo.SaveFilters(ctx, session.id, session.filters); err != nil {
		logger.Warn().Err(err).Str("session_id", session.id).Msg("Failed to persist filters")
	}
}

func (s *ShopService) persistView(ctx context.Context, session *browseSession) {
	if err := s.stateRepo.SaveViewMode(ctx, session.id, session.view); err != nil {
		logger.Warn().Err(err).Str("session_id", session.id).Msg("Failed to persist view mode")
	}
}

func (s *ShopService) snapshotLocked(session *browseSession) entity.ShopSnapshot {
	bounds := s.catalog.Bounds()
	results := Recompute(s.catalog.All(), session.filters, session.effectiveQuery, session.sort)

	return entity.ShopSnapshot{
		Phase:             session.phase,
		Query:             session.query,
		Sort:              session.sort,
		View:              session.view,
		Filters:           session.filters,
		ActiveFilterCount: activeFilterCount(session.filters, bounds),
		Chips:             buildChips(session.effectiveQuery, session.filters, bounds),
		Results:           results,
		Total:             len(results),
		IsLoading:         session.isLoading,
		CanonicalQuery:    session.addressBar,
	}
}

func defaultFilters(bounds catalog.Bounds) entity.FiltersState {
	return entity.FiltersState{
		Price: [2]float64{bounds.Min, bounds.Max},
	}
}

// activeFilterCount считает измерения фильтрации, отличные от дефолта
// Каждое измерение дает не больше единицы независимо от числа значений
func activeFilterCount(filters entity.FiltersState, bounds catalog.Bounds) int {
	count := 0
	if len(filters.Categories) > 0 {
		count++
	}
	if len(filters.Types) > 0 {
		count++
	}
	if filters.Price[0] != bounds.Min || filters.Price[1] != bounds.Max {
		count++
	}
	if filters.MinRating != nil {
		count++
	}
	if filters.VetApprovedOnly {
		count++
	}
	return count
}

// buildChips собирает удаляемые токены активных фильтров
// Порядок стабилен: поиск, категории, типы, цена, рейтинг, vet
func buildChips(query string, filters entity.FiltersState, bounds catalog.Bounds) []entity.Chip {
	chips := []entity.Chip{}

	if q := strings.TrimSpace(query); q != "" {
		chips = append(chips, entity.Chip{Key: "q", Label: fmt.Sprintf("Search: %q", q)})
	}
	for _, c := range filters.Categories {
		chips = append(chips, entity.Chip{Key: "c:" + string(c), Label: "Category: " + string(c)})
	}
	for _, t := range filters.Types {
		chips = append(chips, entity.Chip{Key: "t:" + string(t), Label: "Type: " + string(t)})
	}
	if filters.Price[0] != bounds.Min || filters.Price[1] != bounds.Max {
		chips = append(chips, entity.Chip{
			Key:   "price",
			Label: fmt.Sprintf("Price: $%.0f to $%.0f", filters.Price[0], filters.Price[1]),
		})
	}
	if filters.MinRating != nil {
		chips = append(chips, entity.Chip{
			Key:   "rating",
			Label: fmt.Sprintf("Rating: %s+", strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", *filters.MinRating), "0"), ".")),
		})
	}
	if filters.VetApprovedOnly {
		chips = append(chips, entity.Chip{Key: "vet", Label: "Vet-approved only"})
	}

	return chips
}

func removeCategory(list []entity.PetCategory, c entity.PetCategory) []entity.PetCategory {
	out := list[:0:0]
	for _, item := range list {
		if item != c {
			out = append(out, item)
		}
	}
	return out
}

func removeType(list []entity.ProductType, t entity.ProductType) []entity.ProductType {
	out := list[:0:0]
	for _, item := range list {
		if item != t {
			out = append(out, item)
		}
	}
	return out
}
