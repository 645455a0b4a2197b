package cards

import "testing"

func TestParseTableSkipsMalformed(t *testing.T) {
	data := []byte(`[
		{"code": "A", "name": "Avatar"},
		{"code": "M", "name": "Magic"},
		{"code": "", "name": "No code"},
		{"name": "Missing code"},
		{"code": "X"},
		{"code": "C", "name": "Construct"},
		{"code": "M", "name": "Magic card"}
	]`)
	tbl := ParseTable(data, "type.json")

	opts := tbl.Options()
	want := []Option{{"A", "Avatar"}, {"M", "Magic card"}, {"C", "Construct"}}
	if len(opts) != len(want) {
		t.Fatalf("options = %+v", opts)
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Fatalf("options = %+v, want %+v", opts, want)
		}
	}
}

func TestParseTableNumbersAsStrings(t *testing.T) {
	tbl := ParseTable([]byte(`[{"code": 3, "name": "Three"}]`), "cost.json")
	if tbl.Label("3") != "Three" {
		t.Fatalf("label = %q", tbl.Label("3"))
	}
}

func TestParseTableBadDocuments(t *testing.T) {
	for _, doc := range []string{`not json`, `{"code": "A"}`, ``} {
		if n := ParseTable([]byte(doc), "x.json").Len(); n != 0 {
			t.Errorf("%q: expected empty table, got %d", doc, n)
		}
	}
}

func TestLabelFallback(t *testing.T) {
	tbl := NewTable(Option{Code: "L", Name: "Life"})
	tests := []struct {
		code, want string
	}{
		{"L", "Life"},
		{"Q", "Q"},
		{"", "N/A"},
	}
	for _, tt := range tests {
		if got := tbl.Label(tt.code); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
	var nilTable *Table
	if nilTable.Label("L") != "L" {
		t.Fatal("nil table should fall back to the code")
	}
}
