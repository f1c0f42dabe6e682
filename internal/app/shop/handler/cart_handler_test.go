package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orbitpaws/internal/app/shop/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doCartJSON(t *testing.T, router *gin.Engine, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := newCartRequest(t, method, path, sessionID, body)
	router.ServeHTTP(w, req)
	return w
}

func newCartRequest(t *testing.T, method, path, sessionID string, body interface{}) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	return req
}

func parseCart(t *testing.T, w *httptest.ResponseRecorder) entity.CartResponse {
	t.Helper()

	var cart entity.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	return cart
}

// ==================== Cart Endpoint Tests ====================

func TestGetCart_Empty(t *testing.T) {
	router, _ := setupTestRouter()

	w := doCartJSON(t, router, http.MethodGet, "/cart", "session-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cart := parseCart(t, w)
	assert.True(t, cart.Hydrated)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0.0, cart.Total)
}

func TestGetCart_MissingSessionHeader(t *testing.T) {
	router, _ := setupTestRouter()

	w := doCartJSON(t, router, http.MethodGet, "/cart", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItem(t *testing.T) {
	router, _ := setupTestRouter()

	w := doCartJSON(t, router, http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-001", VariantID: "v-001b", Qty: 2})

	require.Equal(t, http.StatusOK, w.Code)
	cart := parseCart(t, w)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "op-001::v-001b", cart.Lines[0].LineID)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 84.0, cart.Subtotal)
	// Выше порога бесплатной доставки
	assert.Equal(t, 0.0, cart.Shipping)
}

func TestAddItem_MissingProductIDRejected(t *testing.T) {
	router, _ := setupTestRouter()

	w := doCartJSON(t, router, http.MethodPost, "/cart/items", "session-1",
		gin.H{"qty": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetQty(t *testing.T) {
	router, _ := setupTestRouter()
	doCartJSON(t, router, http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-002", Qty: 5})

	w := doCartJSON(t, router, http.MethodPut, "/cart/items/op-002", "session-1",
		entity.SetCartQtyRequest{Qty: 0})

	require.Equal(t, http.StatusOK, w.Code)
	cart := parseCart(t, w)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Qty)
}

func TestRemoveItem(t *testing.T) {
	router, _ := setupTestRouter()
	doCartJSON(t, router, http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-002", Qty: 1})

	w := doCartJSON(t, router, http.MethodDelete, "/cart/items/op-002", "session-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cart := parseCart(t, w)
	assert.Empty(t, cart.Lines)
}

func TestClearCart(t *testing.T) {
	router, _ := setupTestRouter()
	doCartJSON(t, router, http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-002", Qty: 3})

	w := doCartJSON(t, router, http.MethodDelete, "/cart", "session-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartJSON(t, router, http.MethodGet, "/cart", "session-1", nil)
	cart := parseCart(t, w)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, cart.TotalItems)
}

func TestCartsIsolatedBySession(t *testing.T) {
	router, _ := setupTestRouter()
	doCartJSON(t, router, http.MethodPost, "/cart/items", "session-1",
		entity.AddCartItemRequest{ProductID: "op-002", Qty: 1})

	w := doCartJSON(t, router, http.MethodGet, "/cart", "session-2", nil)

	cart := parseCart(t, w)
	assert.Empty(t, cart.Lines)
}
