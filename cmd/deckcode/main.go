package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/config"
	"github.com/youruser/botdb/internal/deck"
	imagepkg "github.com/youruser/botdb/internal/image"
	"github.com/youruser/botdb/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("deckcode: %v", err)
	}
	// stdout carries codes and YAML only
	color.Output = os.Stderr

	switch os.Args[1] {
	case "encode":
		runEncode(cfg, os.Args[2:])
	case "decode":
		runDecode(cfg, os.Args[2:])
	case "qr":
		runQR(cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  deckcode encode [--decks FILE] [--deck N] [--data DIR] [--plain]")
	fmt.Println("  deckcode decode [--data DIR] [--plain] CODE")
	fmt.Println("  deckcode qr     [--decks FILE] [--deck N] [--data DIR] [--size PX] --out FILE")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  encode  Print the deck code of a deck from a YAML deck file")
	fmt.Println("  decode  Print the deck list behind a deck code as YAML")
	fmt.Println("  qr      Write a QR code PNG of a deck's code")
}

// loadCatalog reads the catalog from BOTDB_DATA_URL when set, else dataDir.
func loadCatalog(cfg config.Config, dataDir string) *cards.Catalog {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	return cards.Load(context.Background(), cards.NewSource(dataDir, cfg.DataURL, client))
}

// buildDeck loads the catalog and adds deck N of the YAML file through the
// deck rules, reporting every rejected card.
func buildDeck(cfg config.Config, dataDir, decksFile string, n int) *deck.Store {
	catalog := loadCatalog(cfg, dataDir)
	df, err := deck.ParseDeckFile(decksFile)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	list, err := df.DeckByNumber(n)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	store, errs := list.Build(catalog)
	for _, err := range errs {
		color.Yellow("skipped: %v", err)
	}
	return store
}

func encode(key string, store *deck.Store, plain bool) string {
	text := deck.Serialize(store)
	if plain {
		return text
	}
	code, err := deck.Codec{Key: key}.Encode(text)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return code
}

func runEncode(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	n := fs.Int("deck", 1, "deck number to encode (from the decks file)")
	dataDir := fs.String("data", cfg.DataDir, "directory holding cards.json")
	plain := fs.Bool("plain", false, "print the print:count list without obfuscation")
	fs.Parse(args)

	store := buildDeck(cfg, *dataDir, *decksFile, *n)
	color.Green("%d/%d cards", store.Total(), deck.MaxDeckSize)
	fmt.Println(encode(cfg.DeckKey, store, *plain))
}

func runDecode(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "directory holding cards.json")
	plain := fs.Bool("plain", false, "input is a print:count list, not an obfuscated code")
	name := fs.String("name", "imported", "deck name in the YAML output")
	fs.Parse(args)
	if fs.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	text := fs.Arg(0)
	if !*plain {
		var err error
		if text, err = (deck.Codec{Key: cfg.DeckKey}).Decode(text); err != nil {
			config.Exitf("Error: %v", err)
		}
	}
	catalog := loadCatalog(cfg, *dataDir)
	store := deck.NewStore()
	skipped, violations := deck.Import(store, text, catalog)
	for _, s := range skipped {
		color.Yellow("skipped %q (%s)", s.Pair, s.Kind)
	}
	for _, v := range violations {
		color.Red("rule broken: %s %s", v.Reason.Code(), v.Detail)
	}

	out, err := deck.DeckFile{Decks: []deck.List{deck.ListFromStore(*name, store)}}.Marshal()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	fmt.Print(string(out))
}

func runQR(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	n := fs.Int("deck", 1, "deck number (from the decks file)")
	dataDir := fs.String("data", cfg.DataDir, "directory holding cards.json")
	size := fs.Int("size", imagepkg.DefaultQRSize, "image size in pixels")
	out := fs.String("out", "", "output PNG path")
	fs.Parse(args)
	if *out == "" {
		printUsage()
		os.Exit(1)
	}

	store := buildDeck(cfg, *dataDir, *decksFile, *n)
	png, err := imagepkg.GenerateQRPNG(encode(cfg.DeckKey, store, false), *size)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if err := util.EnsureDir(filepath.Dir(*out)); err != nil {
		config.Exitf("Error: %v", err)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		config.Exitf("Error: %v", err)
	}
	color.Green("wrote %s", *out)
}
