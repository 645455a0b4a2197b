package deck

import (
	"fmt"
	"os"

	"github.com/youruser/botdb/internal/cards"
	"gopkg.in/yaml.v3"
)

// DeckFile is the top-level YAML structure of a saved deck list file.
type DeckFile struct {
	Decks []List `yaml:"decks"`
}

// List is one named deck in a deck file.
type List struct {
	Name  string      `yaml:"name"`
	Cards []CardCount `yaml:"cards"`
}

// CardCount is a card name and how many copies to add.
type CardCount struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// NameLookup resolves a card name to a card.
type NameLookup interface {
	ByName(name string) (cards.Card, bool)
}

// ParseDeckFile reads a YAML deck file.
func ParseDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// DeckByNumber returns the Nth list (1-indexed).
func (df DeckFile) DeckByNumber(n int) (List, error) {
	if n < 1 || n > len(df.Decks) {
		return List{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	return df.Decks[n-1], nil
}

// Build adds every copy in the list to a new store through the deck rules.
// Unknown names and rejected copies are returned as errors; the store keeps
// everything that was accepted.
func (l List) Build(catalog NameLookup) (*Store, []error) {
	s := NewStore()
	var errs []error
	for _, cc := range l.Cards {
		card, ok := catalog.ByName(cc.Name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown card %q", cc.Name))
			continue
		}
		for i := 0; i < cc.Count; i++ {
			if err := s.Add(card); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}
	return s, errs
}

// ListFromStore converts a deck into a YAML list in display order.
func ListFromStore(name string, s *Store) List {
	l := List{Name: name}
	for _, e := range s.Sorted() {
		l.Cards = append(l.Cards, CardCount{Name: e.Card.Name, Count: e.Count})
	}
	return l
}

// Marshal encodes the file as YAML.
func (df DeckFile) Marshal() ([]byte, error) {
	return yaml.Marshal(df)
}
