package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const decksYAML = `decks:
  - name: Knights
    cards:
      - name: Ash Knight
        count: 6
      - name: Crown
        count: 1
      - name: Missing Card
        count: 2
  - name: Empty
    cards: []
`

func writeDecks(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	if err := os.WriteFile(path, []byte(decksYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDeckFileAndBuild(t *testing.T) {
	df, err := ParseDeckFile(writeDecks(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(df.Decks) != 2 {
		t.Fatalf("decks = %d", len(df.Decks))
	}
	list, err := df.DeckByNumber(1)
	if err != nil {
		t.Fatal(err)
	}
	s, errs := list.Build(testCatalog())
	if s.Count("Ash Knight") != MaxCopies || s.Count("Crown") != 1 {
		t.Fatalf("built deck = %+v", s.Entries())
	}
	if len(errs) != 2 {
		t.Fatalf("expected cap rejection and unknown card, got %v", errs)
	}
	if !strings.Contains(errs[1].Error(), "Missing Card") {
		t.Fatalf("unexpected error %v", errs[1])
	}
}

func TestDeckByNumberOutOfRange(t *testing.T) {
	df, err := ParseDeckFile(writeDecks(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 3} {
		if _, err := df.DeckByNumber(n); err == nil {
			t.Errorf("deck %d: expected error", n)
		}
	}
}

func TestParseDeckFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("decks: [unclosed"), 0o644)
	if _, err := ParseDeckFile(path); err == nil || !strings.Contains(err.Error(), "parse deck YAML") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestListFromStoreMarshal(t *testing.T) {
	s := NewStore()
	cat := testCatalog()
	ash, _ := cat.ByName("Ash Knight")
	crown, _ := cat.ByName("Crown")
	mustAdd(t, s, ash, 2)
	mustAdd(t, s, crown, 1)

	out, err := DeckFile{Decks: []List{ListFromStore("mine", s)}}.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)
	if strings.Index(text, "Crown") > strings.Index(text, "Ash Knight") {
		t.Fatalf("expected display order in YAML:\n%s", text)
	}
	if !strings.Contains(text, "name: mine") {
		t.Fatalf("missing deck name:\n%s", text)
	}
}
