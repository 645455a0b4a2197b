package cards

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/youruser/botdb/internal/util"
	"golang.org/x/sync/errgroup"
)

// CardsFile is the card list inside a data source.
const CardsFile = "cards.json"

// Lookup table names. Each is read from "<name>.json".
const (
	TableType      = "type"
	TableSymbol    = "symbol"
	TableCost      = "cost"
	TableGem       = "gem"
	TableIsOnlyOne = "is_only_one"
	TableRarity    = "rarity"
	TablePower     = "power"
	TableSoi       = "soi"
	TablePack      = "pack"
	TableCostColor = "cost_color"
)

// TableNames lists every lookup table in the order filters show them.
var TableNames = []string{
	TableType, TableSymbol, TableCost, TableCostColor, TableGem,
	TablePower, TableRarity, TableIsOnlyOne, TableSoi, TablePack,
}

// Source reads named data files.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads files from a local directory.
type DirSource string

func (d DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), name))
}

// HTTPSource fetches files relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (h HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	return util.GetBytes(ctx, h.Client, util.JoinURL(h.BaseURL, name))
}

// NewSource returns an HTTPSource when baseURL is set and a DirSource over
// dir otherwise.
func NewSource(dir, baseURL string, client *http.Client) Source {
	if baseURL != "" {
		return HTTPSource{BaseURL: baseURL, Client: client}
	}
	return DirSource(dir)
}

// Load fetches the card list and every lookup table concurrently. A failure
// in any single fetch is logged and leaves that part empty; the others still
// load.
func Load(ctx context.Context, src Source) *Catalog {
	var (
		raw    []rawCard
		tables = make([]*Table, len(TableNames))
	)

	var g errgroup.Group
	g.Go(func() error {
		data, err := src.Fetch(ctx, CardsFile)
		if err != nil {
			slog.Warn("error fetching card data", "file", CardsFile, "err", err)
			return nil
		}
		raw, err = parseCards(data)
		if err != nil {
			slog.Warn("error parsing card data", "file", CardsFile, "err", err)
			raw = nil
		}
		return nil
	})
	for i, name := range TableNames {
		g.Go(func() error {
			file := name + ".json"
			data, err := src.Fetch(ctx, file)
			if err != nil {
				slog.Warn("error fetching lookup table", "file", file, "err", err)
				tables[i] = NewTable()
				return nil
			}
			tables[i] = ParseTable(data, file)
			return nil
		})
	}
	_ = g.Wait()

	c := NewCatalog(raw)
	for i, name := range TableNames {
		c.tables[name] = tables[i]
	}
	return c
}

func parseCards(data []byte) ([]rawCard, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s is not valid JSON", CardsFile)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%s is not an array", CardsFile)
	}
	out := []rawCard{}
	root.ForEach(func(_, item gjson.Result) bool {
		out = append(out, rawCard{
			Name:      item.Get("name").String(),
			Print:     item.Get("print").String(),
			Type:      item.Get("type").String(),
			IsOnlyOne: item.Get("isOnlyOne").String(),
			Cost:      item.Get("cost").String(),
			CostColor: item.Get("costColor").String(),
			Gem:       item.Get("gem").String(),
			Power:     item.Get("power").String(),
			Symbol:    item.Get("symbol").String(),
			Soi:       item.Get("soi").String(),
			Pack:      item.Get("pack").String(),
			Ability:   item.Get("ability").String(),
			Rarity:    item.Get("rarity").String(),
			Image:     item.Get("image").String(),
		})
		return true
	})
	return out, nil
}
