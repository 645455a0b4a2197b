package cards

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterOptions selects cards. Empty fields do not constrain.
type FilterOptions struct {
	Search    string `json:"search" form:"q"`
	Type      string `json:"type" form:"type"`
	Symbol    string `json:"symbol" form:"symbol"`
	Cost      string `json:"cost" form:"cost"`
	CostColor string `json:"cost_color" form:"cost_color"`
	Gem       string `json:"gem" form:"gem"`
	Power     string `json:"power" form:"power"`
	IsOnlyOne string `json:"is_only_one" form:"is_only_one"`
	Rarity    string `json:"rarity" form:"rarity"`
	Soi       string `json:"soi" form:"soi"`
	Pack      string `json:"pack" form:"pack"`
}

// IsZero reports whether no filter is set.
func (o FilterOptions) IsZero() bool {
	return o == FilterOptions{}
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}

func matches(want, got string) bool {
	return want == "" || want == got
}

// Match reports whether c passes every set filter. The search term matches
// case-insensitively against name or ability text.
func (o FilterOptions) Match(c Card) bool {
	if term := strings.TrimSpace(o.Search); term != "" {
		term = fold(term)
		if !strings.Contains(fold(c.Name), term) && !strings.Contains(fold(c.Ability), term) {
			return false
		}
	}
	if o.Rarity != "" && !contains(c.Rarities, o.Rarity) {
		return false
	}
	return matches(o.Type, c.Type) &&
		matches(o.Symbol, c.Symbol) &&
		matches(o.Cost, c.Cost) &&
		matches(o.CostColor, c.CostColor) &&
		matches(o.Gem, c.Gem) &&
		matches(o.Power, c.Power) &&
		matches(o.IsOnlyOne, c.IsOnlyOne) &&
		matches(o.Soi, c.Soi) &&
		matches(o.Pack, c.Pack)
}

func Filter(cards []Card, opt FilterOptions) []Card {
	out := []Card{}
	for _, c := range cards {
		if opt.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
