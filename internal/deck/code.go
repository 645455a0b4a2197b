package deck

import (
	"strconv"
	"strings"

	"github.com/youruser/botdb/internal/cards"
)

const (
	pairSep  = ","
	countSep = ":"
)

// PrintLookup resolves a printing identifier to a card.
type PrintLookup interface {
	ByPrint(print string) (cards.Card, bool)
}

// Serialize writes the deck as "print:count" pairs in display order.
func Serialize(s *Store) string {
	return SerializeEntries(s.Sorted())
}

// SerializeEntries writes entries as "print:count" pairs in the given order.
func SerializeEntries(entries []Entry) string {
	pairs := make([]string, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, e.Card.Print+countSep+strconv.Itoa(e.Count))
	}
	return strings.Join(pairs, pairSep)
}

// SkipKind says why an imported pair was dropped.
type SkipKind string

const (
	SkipMalformed    SkipKind = "malformed"
	SkipUnknownPrint SkipKind = "unknown_print"
)

// SkippedPair is a pair of a deck code that produced no entry.
type SkippedPair struct {
	Pair string   `json:"pair"`
	Kind SkipKind `json:"kind"`
}

// ImportResult is what Deserialize recovered from a deck code.
type ImportResult struct {
	Entries []Entry       `json:"entries"`
	Skipped []SkippedPair `json:"skipped,omitempty"`
}

// Deserialize reads "print:count" pairs. Pairs without a print or count, or
// whose print the catalog does not know, are reported in Skipped instead of
// failing the import. Counts are read by parseCount. Two pairs resolving to the same card name merge: the first
// position is kept with the last count.
func Deserialize(text string, catalog PrintLookup) ImportResult {
	var res ImportResult
	pos := map[string]int{}
	for _, pair := range strings.Split(text, pairSep) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, amount, ok := strings.Cut(pair, countSep)
		if amount, _, _ = strings.Cut(amount, countSep); !ok || id == "" || amount == "" {
			res.Skipped = append(res.Skipped, SkippedPair{Pair: pair, Kind: SkipMalformed})
			continue
		}
		card, found := catalog.ByPrint(id)
		if !found {
			res.Skipped = append(res.Skipped, SkippedPair{Pair: pair, Kind: SkipUnknownPrint})
			continue
		}
		e := Entry{Card: card, Count: parseCount(amount)}
		if i, dup := pos[card.Name]; dup {
			res.Entries[i] = e
			continue
		}
		pos[card.Name] = len(res.Entries)
		res.Entries = append(res.Entries, e)
	}
	return res
}

// parseCount reads the leading decimal digits of s. No digits or a value
// below one gives 1; anything above MaxDeckSize, including values that do
// not fit an int, gives MaxDeckSize.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	switch {
	case err != nil:
		return MaxDeckSize
	case n < 1:
		return 1
	case n > MaxDeckSize:
		return MaxDeckSize
	}
	return n
}

// Import deserializes text into s, replacing its contents. It returns the
// pairs that were skipped and the rule violations of the resulting deck.
func Import(s *Store, text string, catalog PrintLookup) ([]SkippedPair, []Violation) {
	res := Deserialize(text, catalog)
	s.Replace(res.Entries)
	return res.Skipped, Validate(s)
}
