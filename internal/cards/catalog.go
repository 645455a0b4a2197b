package cards

// Catalog is the read-only card list plus its lookup tables.
type Catalog struct {
	cards   []Card
	byName  map[string]int
	byPrint map[string]int
	tables  map[string]*Table
}

// NewCatalog groups raw printings by name. The first printing of a name
// supplies every field; later printings only contribute images and rarities
// not seen yet. Printings without a name are dropped.
func NewCatalog(raw []rawCard) *Catalog {
	c := &Catalog{
		byName:  map[string]int{},
		byPrint: map[string]int{},
		tables:  map[string]*Table{},
	}
	for _, r := range raw {
		if r.Name == "" {
			continue
		}
		i, ok := c.byName[r.Name]
		if !ok {
			i = len(c.cards)
			c.byName[r.Name] = i
			c.cards = append(c.cards, Card{
				Name:      r.Name,
				Print:     r.Print,
				Type:      r.Type,
				IsOnlyOne: r.IsOnlyOne,
				Cost:      r.Cost,
				CostColor: r.CostColor,
				Gem:       r.Gem,
				Power:     r.Power,
				Symbol:    r.Symbol,
				Soi:       r.Soi,
				Pack:      r.Pack,
				Ability:   r.Ability,
				Rarities:  []string{r.Rarity},
				Images:    []string{r.Image},
			})
		} else {
			g := &c.cards[i]
			if r.Image != "" && !contains(g.Images, r.Image) {
				g.Images = append(g.Images, r.Image)
			}
			if r.Rarity != "" && !contains(g.Rarities, r.Rarity) {
				g.Rarities = append(g.Rarities, r.Rarity)
			}
		}
		if _, seen := c.byPrint[r.Print]; r.Print != "" && !seen {
			c.byPrint[r.Print] = i
		}
	}
	return c
}

// FromCards builds a catalog from already grouped cards. Used by tests and
// callers that assemble cards themselves.
func FromCards(cs ...Card) *Catalog {
	c := &Catalog{
		byName:  map[string]int{},
		byPrint: map[string]int{},
		tables:  map[string]*Table{},
	}
	for _, card := range cs {
		if _, ok := c.byName[card.Name]; ok {
			continue
		}
		c.byName[card.Name] = len(c.cards)
		if _, ok := c.byPrint[card.Print]; !ok {
			c.byPrint[card.Print] = len(c.cards)
		}
		c.cards = append(c.cards, card)
	}
	return c
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Cards returns the grouped cards in catalog order.
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Len returns the number of grouped cards.
func (c *Catalog) Len() int { return len(c.cards) }

// ByName finds a card by its name.
func (c *Catalog) ByName(name string) (Card, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// ByPrint finds the first card carrying the given printing identifier.
func (c *Catalog) ByPrint(print string) (Card, bool) {
	i, ok := c.byPrint[print]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Table returns the named lookup table; unknown names give an empty table.
func (c *Catalog) Table(name string) *Table {
	if t, ok := c.tables[name]; ok && t != nil {
		return t
	}
	return NewTable()
}

// SetTable installs or replaces a lookup table.
func (c *Catalog) SetTable(name string, t *Table) {
	c.tables[name] = t
}

// Tables returns every known table keyed by name.
func (c *Catalog) Tables() map[string]*Table {
	out := make(map[string]*Table, len(TableNames))
	for _, name := range TableNames {
		out[name] = c.Table(name)
	}
	return out
}
