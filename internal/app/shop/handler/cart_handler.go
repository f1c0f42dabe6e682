package handler

import (
	"net/http"

	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Заголовок, по которому клиент предъявляет идентификатор сессии
const sessionHeader = "X-Session-ID"

// CartHandler обрабатывает HTTP-запросы к корзине
// Идентификатор сессии берется из заголовка X-Session-ID: корзина
// живет независимо от сессии просмотра витрины
type CartHandler struct {
	cartService service.CartServiceInterface
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart возвращает проекцию корзины с итогами
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.cartService.Get(c.Request.Context(), sessionID))
}

// AddItem добавляет позицию или увеличивает количество существующей
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req entity.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	h.cartService.Add(c.Request.Context(), sessionID, req.ProductID, req.VariantID, req.Qty)
	c.JSON(http.StatusOK, h.cartService.Get(c.Request.Context(), sessionID))
}

// SetQty перезаписывает количество позиции
func (h *CartHandler) SetQty(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req entity.SetCartQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	h.cartService.SetQty(c.Request.Context(), sessionID, c.Param("lineId"), req.Qty)
	c.JSON(http.StatusOK, h.cartService.Get(c.Request.Context(), sessionID))
}

// RemoveItem удаляет позицию из корзины
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	h.cartService.Remove(c.Request.Context(), sessionID, c.Param("lineId"))
	c.JSON(http.StatusOK, h.cartService.Get(c.Request.Context(), sessionID))
}

// ClearCart опустошает корзину
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	h.cartService.Clear(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Cart cleared"})
}

func requireSession(c *gin.Context) (string, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return sessionID, true
}
