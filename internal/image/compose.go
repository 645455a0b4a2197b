package imagepkg

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	canvasWidth = 2150
	margin      = 48
	cardW       = 190
	cardH       = 265
	cardGap     = 12
	columns     = 10
	pipSize     = 14
	pipGap      = 6
	qrSize      = 400
)

var (
	background  = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	placeholder = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	pipColor    = color.NRGBA{R: 0xe6, G: 0x7e, B: 0x22, A: 0xff}
)

// Tile is one card slot of a deck image.
type Tile struct {
	Image image.Image // nil draws a grey placeholder
	Count int
	// Accent, when set, is drawn as a bar above the card.
	Accent color.Color
}

// ComposeDeckImage lays tiles out in rows of ten with a row of count pips
// under each card, and the QR code in the top-right corner.
func ComposeDeckImage(tiles []Tile, qr image.Image) image.Image {
	rows := (len(tiles) + columns - 1) / columns
	rowH := cardH + pipSize + 3*cardGap
	top := margin
	if qr != nil {
		top += qrSize + margin
	}
	h := top + rows*rowH + margin
	canvas := imaging.New(canvasWidth, h, background)

	if qr != nil {
		q := imaging.Resize(qr, qrSize, qrSize, imaging.Lanczos)
		canvas = imaging.Paste(canvas, q, image.Pt(canvasWidth-margin-qrSize, margin))
	}

	for i, t := range tiles {
		x := margin + (i%columns)*(cardW+cardGap)
		y := top + (i/columns)*rowH
		if t.Accent != nil {
			canvas = imaging.Paste(canvas, imaging.New(cardW, cardGap/2, t.Accent), image.Pt(x, y-cardGap/2-2))
		}
		var card image.Image
		if t.Image != nil {
			card = imaging.Fill(t.Image, cardW, cardH, imaging.Center, imaging.Lanczos)
		} else {
			card = imaging.New(cardW, cardH, placeholder)
		}
		canvas = imaging.Paste(canvas, card, image.Pt(x, y))

		pip := imaging.New(pipSize, pipSize, pipColor)
		for p := 0; p < t.Count && p*(pipSize+pipGap) < cardW; p++ {
			canvas = imaging.Paste(canvas, pip, image.Pt(x+p*(pipSize+pipGap), y+cardH+cardGap))
		}
	}
	return canvas
}

// ParseHex reads a "#rgb" or "#rrggbb" colour.
func ParseHex(s string) (color.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
