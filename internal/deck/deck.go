package deck

import "github.com/youruser/botdb/internal/cards"

// Entry is a card and how many copies of it the deck holds.
type Entry struct {
	Card  cards.Card `json:"card"`
	Count int        `json:"count"`
}

// Store is a deck under construction, keyed by card name. It is not safe for
// concurrent use; callers that share a Store must serialize access.
type Store struct {
	entries map[string]*Entry
	order   []string
}

func NewStore() *Store {
	return &Store{entries: map[string]*Entry{}}
}

// Add puts one copy of card into the deck if the rules allow it. A rejected
// add returns a *RuleViolation and leaves the deck untouched.
func (s *Store) Add(card cards.Card) error {
	if d := CanAdd(s, card); !d.Allowed {
		return &RuleViolation{Reason: d.Reason, Card: card.Name}
	}
	if e, ok := s.entries[card.Name]; ok {
		e.Count++
		return nil
	}
	s.entries[card.Name] = &Entry{Card: card, Count: 1}
	s.order = append(s.order, card.Name)
	return nil
}

// Remove takes one copy of name out of the deck, dropping the entry when no
// copies remain. It reports whether anything changed.
func (s *Store) Remove(name string) bool {
	e, ok := s.entries[name]
	if !ok {
		return false
	}
	e.Count--
	if e.Count <= 0 {
		s.drop(name)
	}
	return true
}

func (s *Store) drop(name string) {
	delete(s.entries, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the deck.
func (s *Store) Clear() {
	s.entries = map[string]*Entry{}
	s.order = nil
}

// Replace discards the deck and installs entries as given. The rules are
// not consulted; use Validate to inspect the result. Entries with a count
// below one are ignored, and a repeated name keeps its first position with
// the last count.
func (s *Store) Replace(entries []Entry) {
	s.Clear()
	for _, e := range entries {
		if e.Count < 1 {
			continue
		}
		if cur, ok := s.entries[e.Card.Name]; ok {
			cur.Card = e.Card
			cur.Count = e.Count
			continue
		}
		s.entries[e.Card.Name] = &Entry{Card: e.Card, Count: e.Count}
		s.order = append(s.order, e.Card.Name)
	}
}

// Get returns the entry for name.
func (s *Store) Get(name string) (Entry, bool) {
	e, ok := s.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Count returns the number of copies of name, zero if absent.
func (s *Store) Count(name string) int {
	if e, ok := s.entries[name]; ok {
		return e.Count
	}
	return 0
}

// Len returns the number of distinct cards.
func (s *Store) Len() int { return len(s.order) }

// Total returns the number of cards counting copies.
func (s *Store) Total() int {
	total := 0
	for _, e := range s.entries {
		total += e.Count
	}
	return total
}

// Entries returns copies of the entries in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.entries[name])
	}
	return out
}

// Sorted returns the entries in display order.
func (s *Store) Sorted() []Entry {
	return Sorted(s.Entries())
}

// TypeCount is the number of cards of one type in a deck.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TypeCounts sums copies per card type in order of first appearance.
// Cards without a type are counted under "N/A".
func (s *Store) TypeCounts() []TypeCount {
	var out []TypeCount
	idx := map[string]int{}
	for _, name := range s.order {
		e := s.entries[name]
		t := e.Card.Type
		if t == "" {
			t = "N/A"
		}
		i, ok := idx[t]
		if !ok {
			i = len(out)
			idx[t] = i
			out = append(out, TypeCount{Type: t})
		}
		out[i].Count += e.Count
	}
	return out
}

func (s *Store) lifeEntries() int {
	n := 0
	for _, e := range s.entries {
		if e.Card.Type == TypeLife {
			n++
		}
	}
	return n
}
