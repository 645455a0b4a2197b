package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/youruser/botdb/internal/api"
	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/config"
	"github.com/youruser/botdb/internal/deck"
	imagepkg "github.com/youruser/botdb/internal/image"
	"github.com/youruser/botdb/internal/share"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("botdb: %v", err)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: cfg.FetchTimeout}

	// Load cards at startup (best-effort)
	started := time.Now()
	catalog := cards.Load(ctx, cards.NewSource(cfg.DataDir, cfg.DataURL, client))
	if catalog.Len() == 0 {
		color.Yellow("Warning: no card data was loaded, check %s", cards.CardsFile)
	} else {
		color.Green("Loaded %d cards in %v", catalog.Len(), time.Since(started).Round(time.Millisecond))
	}

	var shares share.Store = share.NewMemoryStore(cfg.ShareTTL)
	if cfg.RedisAddr != "" {
		rdb, err := share.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			config.Exitf("botdb: %v", err)
		}
		defer rdb.Close()
		shares = share.NewRedisStore(rdb, cfg.ShareTTL)
		color.Green("Shared decks stored in redis at %s", cfg.RedisAddr)
	}

	images := imagepkg.Fetcher{BaseURL: cfg.ImageURL, Dir: cfg.ImageDir, Client: client}
	sessions := api.NewSessions(cfg.SessionIdle)
	h := api.NewHandler(catalog, sessions, deck.Codec{Key: cfg.DeckKey}, shares, images)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	api.RegisterRoutes(r, h)

	log.Println("starting server on http://localhost:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
