package cards

import "testing"

func filterFixture() []Card {
	return []Card{
		{Name: "Fire Drake", Type: "A", Cost: "3", CostColor: "RED", Gem: "1", Power: "5", Symbol: "S1", IsOnlyOne: "N", Rarities: []string{"C", "SR"}, Soi: "S", Pack: "BT1", Ability: "Deals damage"},
		{Name: "Water Sprite", Type: "M", Cost: "2", CostColor: "BLU", Gem: "0", Power: "2", Symbol: "S2", IsOnlyOne: "Y", Rarities: []string{"R"}, Soi: "O", Pack: "BT1", Ability: "Draw a FIRE card"},
		{Name: "ช้างศึก", Type: "C", Cost: "5", CostColor: "GRN", Gem: "2", Power: "7", Symbol: "S1", IsOnlyOne: "N", Rarities: []string{"UR"}, Soi: "S", Pack: "BT2", Ability: "โจมตี"},
		{Name: "Heart", Type: "L", Pack: "BT2", Rarities: []string{"C"}},
	}
}

func names(cs []Card) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opt  FilterOptions
		want []string
	}{
		{"no filters", FilterOptions{}, []string{"Fire Drake", "Water Sprite", "ช้างศึก", "Heart"}},
		{"search name or ability", FilterOptions{Search: "fire"}, []string{"Fire Drake", "Water Sprite"}},
		{"search thai", FilterOptions{Search: "ช้าง"}, []string{"ช้างศึก"}},
		{"search trims", FilterOptions{Search: "  drake "}, []string{"Fire Drake"}},
		{"type", FilterOptions{Type: "L"}, []string{"Heart"}},
		{"any rarity", FilterOptions{Rarity: "SR"}, []string{"Fire Drake"}},
		{"combined", FilterOptions{Pack: "BT1", IsOnlyOne: "Y"}, []string{"Water Sprite"}},
		{"symbol and soi", FilterOptions{Symbol: "S1", Soi: "S"}, []string{"Fire Drake", "ช้างศึก"}},
		{"cost colour", FilterOptions{CostColor: "GRN"}, []string{"ช้างศึก"}},
		{"gem power cost", FilterOptions{Gem: "1", Power: "5", Cost: "3"}, []string{"Fire Drake"}},
		{"no match", FilterOptions{Type: "A", Pack: "BT2"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(filterFixture(), tt.opt))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterOptionsIsZero(t *testing.T) {
	if !(FilterOptions{}).IsZero() || (FilterOptions{Pack: "x"}).IsZero() {
		t.Fatal("IsZero mismatch")
	}
}

func TestColors(t *testing.T) {
	if CostColorHex("RED") != "#dc3545" || CostColorHex("PURPLE") != FallbackColor {
		t.Fatal("cost colour mismatch")
	}
	if TypeColorHex("L") != "#373535" || TypeColorHex("Z") != "" {
		t.Fatal("type colour mismatch")
	}
}
