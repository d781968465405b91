package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes on the engine.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/search", handler.Search)

		apiGroup.POST("/crawl", handler.Crawl)
		apiGroup.GET("/crawl", handler.Crawl)

		apiGroup.POST("/answer", handler.Answer)

		tweets := apiGroup.Group("/tweets")
		tweets.POST("/stats", handler.TweetStats)
		tweets.GET("/export", handler.TweetExport)

		apiGroup.GET("/history", handler.History)
	}
}
