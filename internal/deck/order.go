package deck

import (
	"slices"

	"github.com/youruser/botdb/internal/cards"
)

var typePriority = map[string]int{
	"A":      1,
	"M":      2,
	"C":      3,
	TypeLife: 4,
}

// Priority ranks a card for display: #1 cards first, then by type
// A, M, C, L, then everything else.
func Priority(c cards.Card) int {
	if c.IsOnlyOne == OnlyOneFlag {
		return 0
	}
	if p, ok := typePriority[c.Type]; ok {
		return p
	}
	return 5
}

// Sorted returns a copy of entries ordered by Priority. Entries of equal
// priority keep their relative order.
func Sorted(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return Priority(a.Card) - Priority(b.Card)
	})
	return out
}
