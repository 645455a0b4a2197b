package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/deck"
)

func newTestTools() *Tools {
	catalog := cards.FromCards(
		cards.Card{Name: "Ash Knight", Print: "P1", Type: "C", IsOnlyOne: "N", Ability: "Guard"},
		cards.Card{Name: "Blade Dancer", Print: "P2", Type: "A", IsOnlyOne: "N"},
		cards.Card{Name: "Crown", Print: "P3", Type: "M", IsOnlyOne: "Y"},
	)
	return NewTools(catalog, deck.Codec{Key: deck.DefaultKey})
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return tc.Text
}

func state(t *testing.T, res *mcp.CallToolResult) deckState {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool error: %s", text(t, res))
	}
	var st deckState
	if err := json.Unmarshal([]byte(text(t, res)), &st); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestSearchCards(t *testing.T) {
	tools := newTestTools()
	res := call(t, tools.handleSearchCards, map[string]any{"text": "guard"})
	var got struct {
		Count int          `json:"count"`
		Cards []cards.Card `json:"cards"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 1 || got.Cards[0].Name != "Ash Knight" {
		t.Fatalf("search = %+v", got)
	}

	res = call(t, tools.handleSearchCards, nil)
	if err := json.Unmarshal([]byte(text(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 3 {
		t.Fatalf("empty search should return every card, got %d", got.Count)
	}
}

func TestAddAndRemove(t *testing.T) {
	tools := newTestTools()
	st := state(t, call(t, tools.handleAddCard, map[string]any{"name": "Ash Knight"}))
	if st.Total != 1 || st.Max != deck.MaxDeckSize {
		t.Fatalf("state = %+v", st)
	}
	state(t, call(t, tools.handleAddCard, map[string]any{"name": "Crown"}))

	res := call(t, tools.handleAddCard, map[string]any{"name": "Crown"})
	if !res.IsError || !strings.Contains(text(t, res), "singleton_present") {
		t.Fatalf("second singleton should be rejected: %s", text(t, res))
	}

	res = call(t, tools.handleAddCard, map[string]any{"name": "Nobody"})
	if !res.IsError {
		t.Fatal("unknown card should be an error")
	}

	st = state(t, call(t, tools.handleShowDeck, nil))
	if len(st.Entries) != 2 || st.Entries[0].Name != "Crown" {
		t.Fatalf("display order = %+v", st.Entries)
	}

	st = state(t, call(t, tools.handleRemoveCard, map[string]any{"name": "Ash Knight"}))
	if st.Total != 1 {
		t.Fatalf("after remove = %+v", st)
	}
	st = state(t, call(t, tools.handleRemoveCard, map[string]any{"name": "Ash Knight"}))
	if st.Total != 1 {
		t.Fatalf("removing an absent card changed the deck: %+v", st)
	}

	st = state(t, call(t, tools.handleClearDeck, nil))
	if st.Total != 0 || len(st.Entries) != 0 {
		t.Fatalf("after clear = %+v", st)
	}
}

func TestExportImport(t *testing.T) {
	src := newTestTools()
	for _, name := range []string{"Ash Knight", "Ash Knight", "Blade Dancer"} {
		state(t, call(t, src.handleAddCard, map[string]any{"name": name}))
	}
	var exp map[string]string
	if err := json.Unmarshal([]byte(text(t, call(t, src.handleExportDeck, nil))), &exp); err != nil {
		t.Fatal(err)
	}
	if exp["plain"] != "P2:1,P1:2" {
		t.Fatalf("plain = %q", exp["plain"])
	}

	dst := newTestTools()
	res := call(t, dst.handleImportDeck, map[string]any{"code": exp["code"]})
	if res.IsError {
		t.Fatalf("import failed: %s", text(t, res))
	}
	var got struct {
		Deck deckState `json:"deck"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Deck.Total != 3 {
		t.Fatalf("imported = %+v", got.Deck)
	}

	res = call(t, dst.handleImportDeck, map[string]any{"code": "not a code"})
	if !res.IsError {
		t.Fatal("bad code should be an error")
	}
}
