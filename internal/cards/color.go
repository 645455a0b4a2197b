package cards

// FallbackColor is used for codes with no known colour.
const FallbackColor = "#ccc"

var costColors = map[string]string{
	"RED":    "#dc3545",
	"BLU":    "#0f4c7a",
	"GRN":    "#1da149",
	"YELLOW": "#ffc107",
	"WHT":    "#ffffff",
	"BLK":    "#542d6c",
}

var typeColors = map[string]string{
	"A": "#dc3545",
	"M": "#036ba8",
	"C": "#f6cf0f",
	"L": "#373535",
}

// CostColorHex maps a cost colour code to a CSS hex colour.
func CostColorHex(code string) string {
	if hex, ok := costColors[code]; ok {
		return hex
	}
	return FallbackColor
}

// TypeColorHex returns the deck-list colour for a card type, or "" for
// types drawn in the default colour.
func TypeColorHex(cardType string) string {
	return typeColors[cardType]
}
