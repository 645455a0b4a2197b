package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/deck"
)

// maxResults caps search_cards output.
const maxResults = 50

// Tools holds the catalog and the single deck an MCP session edits.
type Tools struct {
	mu      sync.Mutex
	catalog *cards.Catalog
	deck    *deck.Store
	codec   deck.Codec
}

func NewTools(catalog *cards.Catalog, codec deck.Codec) *Tools {
	return &Tools{catalog: catalog, deck: deck.NewStore(), codec: codec}
}

// RegisterTools adds all deck tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(searchCardsTool(), t.handleSearchCards)
	s.AddTool(addCardTool(), t.handleAddCard)
	s.AddTool(removeCardTool(), t.handleRemoveCard)
	s.AddTool(showDeckTool(), t.handleShowDeck)
	s.AddTool(clearDeckTool(), t.handleClearDeck)
	s.AddTool(exportDeckTool(), t.handleExportDeck)
	s.AddTool(importDeckTool(), t.handleImportDeck)
}

// --- Tool definitions ---

func searchCardsTool() mcp.Tool {
	return mcp.NewTool("search_cards",
		mcp.WithDescription("Search the card catalog. All arguments are optional; text matches card name or ability."),
		mcp.WithString("text", mcp.Description("Substring of the card name or ability text")),
		mcp.WithString("type", mcp.Description("Card type code, e.g. A, M, C, L")),
		mcp.WithString("cost", mcp.Description("Cost code")),
		mcp.WithString("gem", mcp.Description("Gem code")),
		mcp.WithString("rarity", mcp.Description("Rarity code")),
		mcp.WithString("pack", mcp.Description("Pack code")),
	)
}

func addCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Add one copy of a card to the deck. Fails with the rule that was broken when the deck rules reject it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact card name")),
	)
}

func removeCardTool() mcp.Tool {
	return mcp.NewTool("remove_card",
		mcp.WithDescription("Remove one copy of a card from the deck. Removing a card that is not in the deck does nothing."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact card name")),
	)
}

func showDeckTool() mcp.Tool {
	return mcp.NewTool("show_deck",
		mcp.WithDescription("Show the deck in display order with totals per type. Read-only."),
	)
}

func clearDeckTool() mcp.Tool {
	return mcp.NewTool("clear_deck",
		mcp.WithDescription("Remove every card from the deck."),
	)
}

func exportDeckTool() mcp.Tool {
	return mcp.NewTool("export_deck",
		mcp.WithDescription("Export the deck as a shareable deck code."),
	)
}

func importDeckTool() mcp.Tool {
	return mcp.NewTool("import_deck",
		mcp.WithDescription("Replace the deck with the one in a deck code. Unknown cards are skipped and reported."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Deck code produced by export_deck or the card viewer")),
	)
}

// --- Tool handlers ---

type deckEntry struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type deckState struct {
	Total   int              `json:"total"`
	Max     int              `json:"max"`
	Entries []deckEntry      `json:"entries"`
	Types   []deck.TypeCount `json:"types"`
}

func (t *Tools) state() deckState {
	st := deckState{Total: t.deck.Total(), Max: deck.MaxDeckSize, Entries: []deckEntry{}, Types: t.deck.TypeCounts()}
	for _, e := range t.deck.Sorted() {
		st.Entries = append(st.Entries, deckEntry{Name: e.Card.Name, Type: e.Card.Type, Count: e.Count})
	}
	return st
}

func respondJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return `{"error": "marshal failed"}`
	}
	return string(b)
}

func (t *Tools) handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opt := cards.FilterOptions{
		Search: request.GetString("text", ""),
		Type:   request.GetString("type", ""),
		Cost:   request.GetString("cost", ""),
		Gem:    request.GetString("gem", ""),
		Rarity: request.GetString("rarity", ""),
		Pack:   request.GetString("pack", ""),
	}
	found := cards.Filter(t.catalog.Cards(), opt)
	resp := struct {
		Count int          `json:"count"`
		Cards []cards.Card `json:"cards"`
	}{Count: len(found), Cards: found}
	if len(resp.Cards) > maxResults {
		resp.Cards = resp.Cards[:maxResults]
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleAddCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	card, ok := t.catalog.ByName(name)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown card %q. Use search_cards to find exact names.", name), nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.deck.Add(card); err != nil {
		var rv *deck.RuleViolation
		if errors.As(err, &rv) {
			return mcp.NewToolResultErrorf("Rejected (%s): %s", rv.Reason.Code(), rv.Reason), nil
		}
		return mcp.NewToolResultErrorf("Add failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.state())), nil
}

func (t *Tools) handleRemoveCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deck.Remove(name)
	return mcp.NewToolResultText(respondJSON(t.state())), nil
}

func (t *Tools) handleShowDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return mcp.NewToolResultText(respondJSON(t.state())), nil
}

func (t *Tools) handleClearDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deck.Clear()
	return mcp.NewToolResultText(respondJSON(t.state())), nil
}

func (t *Tools) handleExportDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	plain := deck.Serialize(t.deck)
	t.mu.Unlock()
	code, err := t.codec.Encode(plain)
	if err != nil {
		return mcp.NewToolResultErrorf("Export failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string]string{"code": code, "plain": plain})), nil
}

func (t *Tools) handleImportDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plain, err := t.codec.Decode(request.GetString("code", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Could not decode deck code: %v", err), nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	skipped, violations := deck.Import(t.deck, plain, t.catalog)
	resp := struct {
		Deck       deckState          `json:"deck"`
		Skipped    []deck.SkippedPair `json:"skipped"`
		Violations []deck.Violation   `json:"violations"`
	}{Deck: t.state(), Skipped: skipped, Violations: violations}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
