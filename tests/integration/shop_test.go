//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/internal/app/shop/handler"
	"orbitpaws/internal/app/shop/repository"
	"orbitpaws/internal/app/shop/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ShopIntegrationTestSuite гоняет полный стек сервиса против miniredis
type ShopIntegrationTestSuite struct {
	suite.Suite
	miniRedis   *miniredis.Miniredis
	client      *redis.Client
	stateRepo   repository.StateRepository
	shopService *service.ShopService
	cartService *service.CartService
	router      *gin.Engine
}

func TestShopIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ShopIntegrationTestSuite))
}

func (s *ShopIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	s.stateRepo = repository.NewStateRepository(s.client, time.Hour)
}

func (s *ShopIntegrationTestSuite) SetupTest() {
	s.miniRedis.FlushAll()

	cat := catalog.New(catalog.Seed())
	s.shopService = service.NewShopService(cat, s.stateRepo, 10*time.Millisecond, 10*time.Millisecond, time.Minute)
	s.cartService = service.NewCartService(cat, s.stateRepo, nil)

	s.router = handler.SetupRoutes(
		handler.NewShopHandler(s.shopService),
		handler.NewCartHandler(s.cartService),
		handler.NewCatalogHandler(cat),
	)
}

func (s *ShopIntegrationTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *ShopIntegrationTestSuite) request(method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ShopIntegrationTestSuite) createSession() string {
	w := s.request(http.MethodPost, "/shop/sessions", "", nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp entity.SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.SessionID
}

func (s *ShopIntegrationTestSuite) parseSnapshot(w *httptest.ResponseRecorder) entity.ShopSnapshot {
	var snapshot entity.ShopSnapshot
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &snapshot))
	return snapshot
}

// ===================== State Persistence Tests =====================

func (s *ShopIntegrationTestSuite) TestFiltersPersistedToRedis() {
	sessionID := s.createSession()
	s.request(http.MethodPost, "/shop/sessions/"+sessionID+"/resolve", "", nil)

	w := s.request(http.MethodPut, "/shop/sessions/"+sessionID+"/filters", "", entity.SetFiltersRequest{
		Categories: []entity.PetCategory{entity.PetCategoryDog},
		PriceMin:   12,
		PriceMax:   32,
	})
	s.Require().Equal(http.StatusOK, w.Code)

	s.True(s.miniRedis.Exists(sessionID + ":orbitpaws:filters"))
}

func (s *ShopIntegrationTestSuite) TestURLWinsOverwritesPersistedState() {
	sessionID := s.createSession()

	// Предварительно сохраненное состояние другой "вкладки"
	err := s.stateRepo.SaveFilters(context.Background(), sessionID, entity.FiltersState{
		Categories: []entity.PetCategory{entity.PetCategoryDog},
		Price:      [2]float64{12, 32},
	})
	s.Require().NoError(err)

	w := s.request(http.MethodPost, "/shop/sessions/"+sessionID+"/resolve?c=cat&v=1", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	snapshot := s.parseSnapshot(w)
	s.Equal([]entity.PetCategory{entity.PetCategoryCat}, snapshot.Filters.Categories)

	// Сохраненное состояние перезаписано снятым из URL
	saved, err := s.stateRepo.GetFilters(context.Background(), sessionID)
	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Equal([]entity.PetCategory{entity.PetCategoryCat}, saved.Categories)
	s.True(saved.VetApprovedOnly)
}

func (s *ShopIntegrationTestSuite) TestStateRestoredWithoutURLParams() {
	sessionID := s.createSession()

	err := s.stateRepo.SaveFilters(context.Background(), sessionID, entity.FiltersState{
		Types: []entity.ProductType{entity.ProductTypeGrooming},
		Price: [2]float64{12, 32},
	})
	s.Require().NoError(err)
	err = s.stateRepo.SaveViewMode(context.Background(), sessionID, entity.ViewList)
	s.Require().NoError(err)

	w := s.request(http.MethodPost, "/shop/sessions/"+sessionID+"/resolve", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	snapshot := s.parseSnapshot(w)
	s.Equal([]entity.ProductType{entity.ProductTypeGrooming}, snapshot.Filters.Types)
	s.Equal(entity.ViewList, snapshot.View)
	s.Equal(3, snapshot.Total)
}

func (s *ShopIntegrationTestSuite) TestMalformedPersistedStateFallsBackToDefaults() {
	sessionID := s.createSession()
	s.miniRedis.Set(sessionID+":orbitpaws:filters", "{broken json")

	w := s.request(http.MethodPost, "/shop/sessions/"+sessionID+"/resolve", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	snapshot := s.parseSnapshot(w)
	s.Equal([2]float64{12, 32}, snapshot.Filters.Price)
	s.Equal(8, snapshot.Total)
}

// ===================== Cart Persistence Tests =====================

func (s *ShopIntegrationTestSuite) TestCartSurvivesProcessRestart() {
	w := s.request(http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-001", VariantID: "v-001b", Qty: 2})
	s.Require().Equal(http.StatusOK, w.Code)

	// Сброс in-memory состояния имитирует новый процесс
	s.cartService.Forget("session-1")

	w = s.request(http.MethodGet, "/cart", "session-1", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var cart entity.CartResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))
	s.Require().Len(cart.Lines, 1)
	s.Equal("op-001::v-001b", cart.Lines[0].LineID)
	s.Equal(2, cart.TotalItems)
}

func (s *ShopIntegrationTestSuite) TestClearCartDeletesRedisKey() {
	s.request(http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-002", Qty: 1})
	s.True(s.miniRedis.Exists("session-1:orbitpaws:cart:v1"))

	w := s.request(http.MethodDelete, "/cart", "session-1", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	s.False(s.miniRedis.Exists("session-1:orbitpaws:cart:v1"))
}

// ===================== Sweep Tests =====================

func (s *ShopIntegrationTestSuite) TestSweepEvictsSessionButKeepsRedisState() {
	cat := catalog.New(catalog.Seed())
	shopService := service.NewShopService(cat, s.stateRepo, 10*time.Millisecond, 10*time.Millisecond, 0)

	shopService.Mount("session-1")
	err := s.stateRepo.SaveFilters(context.Background(), "session-1", entity.FiltersState{Price: [2]float64{12, 32}})
	s.Require().NoError(err)

	swept := shopService.SweepIdleSessions(nil)

	s.Equal(1, swept)
	s.True(s.miniRedis.Exists("session-1:orbitpaws:filters"))
}
