package cards

import (
	"log/slog"

	"github.com/tidwall/gjson"
)

// Option is one code/label pair of a lookup table.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Table is a code→label lookup that keeps the order of its source file,
// which is the order filters list their options in.
type Table struct {
	options []Option
	index   map[string]string
}

// NewTable builds a table from options. Later duplicates of a code replace
// the label but keep the original position.
func NewTable(options ...Option) *Table {
	t := &Table{index: map[string]string{}}
	for _, o := range options {
		t.set(o.Code, o.Name)
	}
	return t
}

func (t *Table) set(code, name string) {
	if _, ok := t.index[code]; ok {
		for i := range t.options {
			if t.options[i].Code == code {
				t.options[i].Name = name
			}
		}
	} else {
		t.options = append(t.options, Option{Code: code, Name: name})
	}
	t.index[code] = name
}

// ParseTable reads a JSON array of {"code", "name"} objects. Items lacking
// either field are skipped and logged; a document that is not an array
// yields an empty table.
func ParseTable(data []byte, source string) *Table {
	t := NewTable()
	if !gjson.ValidBytes(data) {
		slog.Warn("lookup table is not valid JSON", "source", source)
		return t
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		slog.Warn("lookup table is not an array", "source", source)
		return t
	}
	root.ForEach(func(_, item gjson.Result) bool {
		code := item.Get("code").String()
		name := item.Get("name").String()
		if code == "" || name == "" {
			slog.Warn("skipping malformed lookup item", "source", source, "item", item.Raw)
			return true
		}
		t.set(code, name)
		return true
	})
	return t
}

// Label returns the label for code, falling back to the code itself and
// then to "N/A" when the code is empty.
func (t *Table) Label(code string) string {
	if t != nil {
		if name, ok := t.index[code]; ok {
			return name
		}
	}
	if code == "" {
		return "N/A"
	}
	return code
}

// Options returns the table entries in file order.
func (t *Table) Options() []Option {
	if t == nil {
		return nil
	}
	out := make([]Option, len(t.options))
	copy(out, t.options)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.options)
}
