package handler

import (
	"net/http"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/entity"

	"github.com/gin-gonic/gin"
)

// CatalogHandler отдает каталог напрямую, без сессии
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// GetProducts возвращает весь каталог в каноническом порядке
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products := h.catalog.All()
	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetProduct возвращает товар по идентификатору
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetFeatured возвращает топ каталога по популярности
func (h *CatalogHandler) GetFeatured(c *gin.Context) {
	products := h.catalog.Featured(4)
	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}
