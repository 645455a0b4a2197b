package cards

// Card is one catalog entry after printings sharing a name were grouped.
// Images and Rarities hold every distinct value seen across those printings,
// first printing first.
type Card struct {
	Name      string   `json:"name"`
	Print     string   `json:"print"`
	Type      string   `json:"type"`
	IsOnlyOne string   `json:"isOnlyOne"`
	Cost      string   `json:"cost"`
	CostColor string   `json:"costColor"`
	Gem       string   `json:"gem"`
	Power     string   `json:"power"`
	Symbol    string   `json:"symbol"`
	Soi       string   `json:"soi"`
	Pack      string   `json:"pack"`
	Ability   string   `json:"ability"`
	Rarities  []string `json:"rarity"`
	Images    []string `json:"image"`
}

// Image returns the first image reference, or "" when the card has none.
func (c Card) Image() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}

// rawCard is the shape of a single printing inside cards.json.
type rawCard struct {
	Name      string `json:"name"`
	Print     string `json:"print"`
	Type      string `json:"type"`
	IsOnlyOne string `json:"isOnlyOne"`
	Cost      string `json:"cost"`
	CostColor string `json:"costColor"`
	Gem       string `json:"gem"`
	Power     string `json:"power"`
	Symbol    string `json:"symbol"`
	Soi       string `json:"soi"`
	Pack      string `json:"pack"`
	Ability   string `json:"ability"`
	Rarity    string `json:"rarity"`
	Image     string `json:"image"`
}
