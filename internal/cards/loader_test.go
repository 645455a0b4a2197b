package cards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const cardsJSON = `[
	{"name": "Ash Knight", "print": "BT1-001", "type": "C", "isOnlyOne": "N", "cost": "2", "rarity": "C", "image": "img/001.png"},
	{"name": "Ash Knight", "print": "BT1-001P", "type": "C", "isOnlyOne": "N", "cost": "2", "rarity": "P", "image": "img/001p.png"},
	{"name": "Crown", "print": "BT1-002", "type": "A", "isOnlyOne": "Y", "cost": 4, "rarity": "SR", "image": "img/002.png"}
]`

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadFromDir(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		CardsFile:     cardsJSON,
		"type.json":   `[{"code": "A", "name": "Avatar"}, {"code": "C", "name": "Construct"}]`,
		"rarity.json": `[{"code": "C", "name": "Common"}, {"bad": true}]`,
		"pack.json":   `this is not json`,
	})

	c := Load(context.Background(), DirSource(dir))
	if c.Len() != 2 {
		t.Fatalf("expected 2 cards, got %d", c.Len())
	}
	crown, ok := c.ByPrint("BT1-002")
	if !ok || crown.Cost != "4" {
		t.Fatalf("numeric cost should load as text: %+v", crown)
	}
	if got := c.Table(TableType).Label("A"); got != "Avatar" {
		t.Fatalf("type label = %q", got)
	}
	if c.Table(TableRarity).Len() != 1 {
		t.Fatalf("rarity table = %+v", c.Table(TableRarity).Options())
	}
	if c.Table(TablePack).Len() != 0 || c.Table(TableGem).Len() != 0 {
		t.Fatal("broken and missing tables should load empty")
	}
}

func TestLoadMissingCardsKeepsTables(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"type.json": `[{"code": "L", "name": "Life"}]`,
	})
	c := Load(context.Background(), DirSource(dir))
	if c.Len() != 0 {
		t.Fatalf("expected no cards, got %d", c.Len())
	}
	if c.Table(TableType).Label("L") != "Life" {
		t.Fatal("type table should still load")
	}
}

func TestLoadMalformedCards(t *testing.T) {
	dir := writeDataDir(t, map[string]string{CardsFile: `{"name": "not an array"}`})
	if c := Load(context.Background(), DirSource(dir)); c.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d", c.Len())
	}
}

func TestLoadOverHTTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/database/cards.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cardsJSON))
	})
	mux.HandleFunc("/database/type.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"code": "C", "name": "Construct"}]`))
	})
	mux.HandleFunc("/database/gem.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := Load(context.Background(), HTTPSource{BaseURL: srv.URL + "/database/"})
	if c.Len() != 2 {
		t.Fatalf("expected 2 cards, got %d", c.Len())
	}
	if c.Table(TableType).Label("C") != "Construct" {
		t.Fatal("type table not loaded")
	}
	if c.Table(TableGem).Len() != 0 {
		t.Fatal("failed table should be empty")
	}
}

func TestNewSource(t *testing.T) {
	if src, ok := NewSource("data", "", nil).(DirSource); !ok || src != "data" {
		t.Fatalf("empty URL should read the directory, got %#v", src)
	}
	client := &http.Client{}
	src, ok := NewSource("data", "https://x.test/db", client).(HTTPSource)
	if !ok || src.BaseURL != "https://x.test/db" || src.Client != client {
		t.Fatalf("URL should select HTTP, got %#v", src)
	}
}
