package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/config"
	"github.com/youruser/botdb/internal/deck"
	botdbmcp "github.com/youruser/botdb/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("botdb-mcp: %v", err)
	}
	dataDir := flag.String("data", cfg.DataDir, "directory holding cards.json and lookup tables")
	dataURL := flag.String("data-url", cfg.DataURL, "base URL to fetch cards.json and lookup tables from instead of -data")
	key := flag.String("key", cfg.DeckKey, "deck code key")
	flag.Parse()

	client := &http.Client{Timeout: cfg.FetchTimeout}
	catalog := cards.Load(context.Background(), cards.NewSource(*dataDir, *dataURL, client))

	s := server.NewMCPServer("botdb", "1.0.0")
	botdbmcp.RegisterTools(s, botdbmcp.NewTools(catalog, deck.Codec{Key: *key}))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
