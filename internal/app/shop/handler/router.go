package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orbitpaws/pkg/logger"
	"orbitpaws/pkg/metrics"
)

func SetupRoutes(shopHandler *ShopHandler, cartHandler *CartHandler, catalogHandler *CatalogHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("shop-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "shop-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	products := router.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/featured", catalogHandler.GetFeatured)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	sessions := router.Group("/shop/sessions")
	{
		sessions.POST("", shopHandler.CreateSession)
		sessions.POST("/:id/resolve", shopHandler.ResolveSource)
		sessions.GET("/:id/results", shopHandler.GetResults)
		sessions.PUT("/:id/query", shopHandler.SetQuery)
		sessions.PUT("/:id/sort", shopHandler.SetSort)
		sessions.PUT("/:id/view", shopHandler.SetView)
		sessions.PUT("/:id/filters", shopHandler.SetFilters)
		sessions.DELETE("/:id/filters", shopHandler.ClearFilters)
		sessions.DELETE("/:id/chips/:key", shopHandler.RemoveChip)
	}

	cart := router.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:lineId", cartHandler.SetQty)
		cart.DELETE("/items/:lineId", cartHandler.RemoveItem)
	}

	return router
}
