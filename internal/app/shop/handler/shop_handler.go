package handler

import (
	"errors"
	"net/http"

	"orbitpaws/internal/app/shop/entity"
	"orbitpaws/internal/app/shop/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ShopHandler обрабатывает HTTP-запросы к витрине
type ShopHandler struct {
	shopService service.ShopServiceInterface
	validator   *validator.Validate
}

func NewShopHandler(shopService service.ShopServiceInterface) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
		validator:   validator.New(),
	}
}

// CreateSession создает сессию просмотра в фазе PRE_HYDRATION
func (h *ShopHandler) CreateSession(c *gin.Context) {
	sessionID := uuid.New().String()
	snapshot := h.shopService.Mount(sessionID)

	c.JSON(http.StatusCreated, entity.SessionResponse{
		SessionID: sessionID,
		Phase:     snapshot.Phase,
		Snapshot:  snapshot,
	})
}

// ResolveSource выполняет выбор источника истины первой загрузки
// Состояние URL клиента передается как query string самого запроса
func (h *ShopHandler) ResolveSource(c *gin.Context) {
	sessionID := c.Param("id")

	snapshot, err := h.shopService.ResolveSource(c.Request.Context(), sessionID, c.Request.URL.Query())
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetResults возвращает текущую проекцию состояния витрины
func (h *ShopHandler) GetResults(c *gin.Context) {
	snapshot, err := h.shopService.Snapshot(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SetQuery обновляет поисковый ввод сессии
func (h *ShopHandler) SetQuery(c *gin.Context) {
	var req entity.SetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	snapshot, err := h.shopService.SetQuery(c.Param("id"), req.Query)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SetSort переключает ключ сортировки сессии
func (h *ShopHandler) SetSort(c *gin.Context) {
	var req entity.SetSortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	snapshot, err := h.shopService.SetSort(c.Param("id"), req.Sort)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SetView переключает режим отображения каталога
func (h *ShopHandler) SetView(c *gin.Context) {
	var req entity.SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	snapshot, err := h.shopService.SetViewMode(c.Request.Context(), c.Param("id"), req.View)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SetFilters перезаписывает состояние фильтров сессии целиком
func (h *ShopHandler) SetFilters(c *gin.Context) {
	var req entity.SetFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	filters := entity.FiltersState{
		Categories:      req.Categories,
		Types:           req.Types,
		Price:           [2]float64{req.PriceMin, req.PriceMax},
		MinRating:       req.MinRating,
		VetApprovedOnly: req.VetApprovedOnly,
	}

	snapshot, err := h.shopService.SetFilters(c.Request.Context(), c.Param("id"), filters)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ClearFilters сбрасывает фильтры и поиск к дефолтам
func (h *ShopHandler) ClearFilters(c *gin.Context) {
	snapshot, err := h.shopService.ClearFilters(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// RemoveChip снимает один активный фильтр по ключу чипа
func (h *ShopHandler) RemoveChip(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chip key is required"})
		return
	}

	snapshot, err := h.shopService.RemoveChip(c.Request.Context(), c.Param("id"), key)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
