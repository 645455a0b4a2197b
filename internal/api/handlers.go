package api

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youruser/botdb/internal/cards"
	"github.com/youruser/botdb/internal/deck"
	imagepkg "github.com/youruser/botdb/internal/image"
	"github.com/youruser/botdb/internal/share"
	"golang.org/x/sync/errgroup"
)

const (
	imageBudget  = 20 * time.Second
	imageWorkers = 8
)

// ImageLoader resolves card image references.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Handler serves the catalog and deck sessions.
type Handler struct {
	catalog  *cards.Catalog
	sessions *Sessions
	codec    deck.Codec
	shares   share.Store
	images   ImageLoader
}

func NewHandler(catalog *cards.Catalog, sessions *Sessions, codec deck.Codec, shares share.Store, images ImageLoader) *Handler {
	return &Handler{
		catalog:  catalog,
		sessions: sessions,
		codec:    codec,
		shares:   shares,
		images:   images,
	}
}

func errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// sessionError maps a failed session lookup to a response.
func sessionError(c *gin.Context, err error) {
	var rv *deck.RuleViolation
	switch {
	case errors.Is(err, ErrNoSession):
		errorJSON(c, http.StatusNotFound, err)
	case errors.As(err, &rv):
		c.JSON(http.StatusConflict, gin.H{"error": rv.Error(), "reason": rv.Reason.Code()})
	default:
		errorJSON(c, http.StatusInternalServerError, err)
	}
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cards": h.catalog.Len()})
}

func (h *Handler) listCards(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindQuery(&opt); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	h.respondCards(c, opt)
}

// respondCards writes the catalog cards matching opt.
func (h *Handler) respondCards(c *gin.Context, opt cards.FilterOptions) {
	out := h.catalog.Cards()
	if !opt.IsZero() {
		out = cards.Filter(out, opt)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": h.cardViews(out)})
}

func (h *Handler) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.BindJSON(&opt); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	h.respondCards(c, opt)
}

func (h *Handler) lookups(c *gin.Context) {
	out := gin.H{}
	for name, t := range h.catalog.Tables() {
		out[name] = t.Options()
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createDeck(c *gin.Context) {
	id := h.sessions.Create()
	c.JSON(http.StatusCreated, h.deckView(id, deck.NewStore()))
}

func (h *Handler) getDeck(c *gin.Context) {
	id := c.Param("id")
	var v deckView
	err := h.sessions.With(id, func(d *deck.Store) error {
		v = h.deckView(id, d)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) clearDeck(c *gin.Context) {
	id := c.Param("id")
	var v deckView
	err := h.sessions.With(id, func(d *deck.Store) error {
		d.Clear()
		v = h.deckView(id, d)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// deleteDeck ends a deck session.
func (h *Handler) deleteDeck(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		errorJSON(c, http.StatusNotFound, ErrNoSession)
		return
	}
	c.Status(http.StatusNoContent)
}

// addCard accepts a card name, or a print when no name is given.
func (h *Handler) addCard(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Print string `json:"print"`
	}
	if err := c.BindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	card, ok := h.catalog.ByName(req.Name)
	if !ok && req.Name == "" && req.Print != "" {
		card, ok = h.catalog.ByPrint(req.Print)
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown card"})
		return
	}
	id := c.Param("id")
	var v deckView
	err := h.sessions.With(id, func(d *deck.Store) error {
		if err := d.Add(card); err != nil {
			return err
		}
		v = h.deckView(id, d)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// removeCard takes the card name from a catch-all segment so names may
// contain "/".
func (h *Handler) removeCard(c *gin.Context) {
	id := c.Param("id")
	name := strings.TrimPrefix(c.Param("name"), "/")
	var (
		v       deckView
		removed bool
	)
	err := h.sessions.With(id, func(d *deck.Store) error {
		removed = d.Remove(name)
		v = h.deckView(id, d)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "deck": v})
}

// deckCode serializes the deck and obfuscates it.
func (h *Handler) deckCode(id string) (plain, code string, err error) {
	err = h.sessions.With(id, func(d *deck.Store) error {
		plain = deck.Serialize(d)
		return nil
	})
	if err != nil {
		return "", "", err
	}
	code, err = h.codec.Encode(plain)
	return plain, code, err
}

func (h *Handler) exportDeck(c *gin.Context) {
	plain, code, err := h.deckCode(c.Param("id"))
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plain": plain, "code": code})
}

// importDeck replaces the deck with a shared one. "code" is an obfuscated
// deck code; "plain" is the print:count list itself.
func (h *Handler) importDeck(c *gin.Context) {
	var req struct {
		Code  string `json:"code"`
		Plain string `json:"plain"`
	}
	if err := c.BindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	plain := req.Plain
	if code := strings.TrimSpace(req.Code); code != "" {
		var err error
		if plain, err = h.codec.Decode(code); err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
	}
	if strings.TrimSpace(plain) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck code is required"})
		return
	}

	id := c.Param("id")
	var (
		v          deckView
		skipped    []deck.SkippedPair
		violations []deck.Violation
	)
	err := h.sessions.With(id, func(d *deck.Store) error {
		skipped, violations = deck.Import(d, plain, h.catalog)
		v = h.deckView(id, d)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	if skipped == nil {
		skipped = []deck.SkippedPair{}
	}
	if violations == nil {
		violations = []deck.Violation{}
	}
	c.JSON(http.StatusOK, gin.H{"deck": v, "skipped": skipped, "violations": violations})
}

func (h *Handler) shareDeck(c *gin.Context) {
	_, code, err := h.deckCode(c.Param("id"))
	if err != nil {
		sessionError(c, err)
		return
	}
	shareID, err := h.shares.Save(c.Request.Context(), code)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"share_id": shareID, "code": code})
}

func (h *Handler) getShare(c *gin.Context) {
	code, err := h.shares.Load(c.Request.Context(), c.Param("shareID"))
	if errors.Is(err, share.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

func querySize(c *gin.Context) int {
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	return size
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	b, err := imagepkg.GenerateQRPNG(text, querySize(c))
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) deckQR(c *gin.Context) {
	_, code, err := h.deckCode(c.Param("id"))
	if err != nil {
		sessionError(c, err)
		return
	}
	b, err := imagepkg.GenerateQRPNG(code, querySize(c))
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// deckImage renders the sorted deck with card art and the deck code QR.
// Card images are fetched concurrently within imageBudget; those that fail
// to load are drawn as placeholders.
func (h *Handler) deckImage(c *gin.Context) {
	var (
		entries []deck.Entry
		plain   string
	)
	err := h.sessions.With(c.Param("id"), func(d *deck.Store) error {
		entries = d.Sorted()
		plain = deck.SerializeEntries(entries)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	code, err := h.codec.Encode(plain)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}

	tiles := make([]imagepkg.Tile, len(entries))
	for i, e := range entries {
		tiles[i] = imagepkg.Tile{Count: e.Count, Accent: accent(e.Card.Type)}
	}
	if h.images != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), imageBudget)
		defer cancel()
		var g errgroup.Group
		g.SetLimit(imageWorkers)
		for i, e := range entries {
			g.Go(func() error {
				img, err := h.images.Load(ctx, e.Card.Image())
				if err != nil {
					log.Println("card image error:", e.Card.Name, err)
					return nil
				}
				tiles[i].Image = img
				return nil
			})
		}
		_ = g.Wait()
	}

	var qrImg image.Image
	if plain != "" {
		if q, err := imagepkg.GenerateQRImage(code, imagepkg.DefaultQRSize); err == nil {
			qrImg = q
		}
	}
	out := imagepkg.ComposeDeckImage(tiles, qrImg)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
