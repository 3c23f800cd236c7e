package render

import "github.com/aschmelyun/captioncraft/internal/caption"

const (
	ElectricBlue = "Electric Blue"
	CherryRed    = "Cherry Red"
	ForestGreen  = "Forest Green"
	SunnyYellow  = "Sunny Yellow"
	RoyalPurple  = "Royal Purple"
)

var paletteColors = map[string]string{
	ElectricBlue: "#007bff",
	CherryRed:    "#dc3545",
	ForestGreen:  "#28a745",
	SunnyYellow:  "#ffc107",
	RoyalPurple:  "#6f42c1",
}

// PaletteNames lists the selectable colour names in display order.
func PaletteNames() []string {
	return []string{ElectricBlue, CherryRed, ForestGreen, SunnyYellow, RoyalPurple}
}

// IsPaletteName reports whether name is a known palette colour.
func IsPaletteName(name string) bool {
	_, ok := paletteColors[name]
	return ok
}

func defaultColorName(cat caption.Category) string {
	switch cat {
	case caption.Noun:
		return ElectricBlue
	case caption.Verb:
		return CherryRed
	case caption.Adjective:
		return ForestGreen
	}
	return ""
}

// ColorFor returns the display colour of a category under the palette colour
// name. Unknown names fall back to the category's default colour; None has no
// palette colour and returns "".
func ColorFor(cat caption.Category, name string) string {
	if cat == caption.None {
		return ""
	}
	if hex, ok := paletteColors[name]; ok {
		return hex
	}
	return paletteColors[defaultColorName(cat)]
}

// Palette is the colour name chosen for each category.
type Palette struct {
	Noun      string `yaml:"noun" validate:"omitempty,palette"`
	Verb      string `yaml:"verb" validate:"omitempty,palette"`
	Adjective string `yaml:"adjective" validate:"omitempty,palette"`
}

func DefaultPalette() Palette {
	return Palette{Noun: ElectricBlue, Verb: CherryRed, Adjective: ForestGreen}
}

// Color resolves a category to a hex colour. Plain text takes the theme's
// text colour.
func (p Palette) Color(cat caption.Category, dark bool) string {
	switch cat {
	case caption.Noun:
		return ColorFor(cat, p.Noun)
	case caption.Verb:
		return ColorFor(cat, p.Verb)
	case caption.Adjective:
		return ColorFor(cat, p.Adjective)
	}
	return DefaultTextColor(dark)
}
