package api

import (
	"image/color"

	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/deck"
	imagepkg "github.com/youruser/botdb/internal/image"
)

type cardView struct {
	cards.Card
	TypeLabel    string `json:"typeLabel"`
	CostColorHex string `json:"costColorHex"`
}

type entryView struct {
	Name      string `json:"name"`
	Print     string `json:"print"`
	Type      string `json:"type"`
	TypeLabel string `json:"typeLabel"`
	TypeColor string `json:"typeColor,omitempty"`
	OnlyOne   bool   `json:"onlyOne"`
	Count     int    `json:"count"`
	Image     string `json:"image,omitempty"`
}

type typeView struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type deckView struct {
	ID      string      `json:"id"`
	Total   int         `json:"total"`
	Max     int         `json:"max"`
	Entries []entryView `json:"entries"`
	Types   []typeView  `json:"types"`
}

func (h *Handler) cardViews(cs []cards.Card) []cardView {
	types := h.catalog.Table(cards.TableType)
	out := make([]cardView, 0, len(cs))
	for _, c := range cs {
		out = append(out, cardView{
			Card:         c,
			TypeLabel:    types.Label(c.Type),
			CostColorHex: cards.CostColorHex(c.CostColor),
		})
	}
	return out
}

func (h *Handler) deckView(id string, d *deck.Store) deckView {
	types := h.catalog.Table(cards.TableType)
	v := deckView{
		ID:      id,
		Total:   d.Total(),
		Max:     deck.MaxDeckSize,
		Entries: []entryView{},
		Types:   []typeView{},
	}
	for _, e := range d.Sorted() {
		v.Entries = append(v.Entries, entryView{
			Name:      e.Card.Name,
			Print:     e.Card.Print,
			Type:      e.Card.Type,
			TypeLabel: types.Label(e.Card.Type),
			TypeColor: cards.TypeColorHex(e.Card.Type),
			OnlyOne:   e.Card.IsOnlyOne == deck.OnlyOneFlag,
			Count:     e.Count,
			Image:     e.Card.Image(),
		})
	}
	for _, tc := range d.TypeCounts() {
		v.Types = append(v.Types, typeView{Type: tc.Type, Label: types.Label(tc.Type), Count: tc.Count})
	}
	return v
}

func accent(cardType string) color.Color {
	if c, ok := imagepkg.ParseHex(cards.TypeColorHex(cardType)); ok {
		return c
	}
	return nil
}
