package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/cards", h.listCards)
		api.POST("/filter", h.filterHandler)
		api.GET("/lookups", h.lookups)
		api.GET("/qr", h.qrHandler)
		api.GET("/share/:shareID", h.getShare)
	}
	decks := api.Group("/decks")
	{
		decks.POST("", h.createDeck)
		decks.GET("/:id", h.getDeck)
		decks.DELETE("/:id", h.clearDeck)
		decks.POST("/:id/cards", h.addCard)
		decks.DELETE("/:id/session", h.deleteDeck)
		decks.DELETE("/:id/cards/*name", h.removeCard)
		decks.GET("/:id/export", h.exportDeck)
		decks.POST("/:id/import", h.importDeck)
		decks.POST("/:id/share", h.shareDeck)
		decks.GET("/:id/qr", h.deckQR)
		decks.GET("/:id/image", h.deckImage)
	}
}
