package render

import "github.com/aschmelyun/captioncraft/internal/caption"

// Styled is a caption segment with its display colour.
type Styled struct {
	Kind      caption.Category
	Content   string
	Color     string
	Underline bool
}

// Line is the styled active caption of one language.
type Line struct {
	Lang     string
	Style    Resolved
	Segments []Styled
}

// Text returns the caption with tags removed.
func (l Line) Text() string {
	n := 0
	for _, s := range l.Segments {
		n += len(s.Content)
	}
	b := make([]byte, 0, n)
	for _, s := range l.Segments {
		b = append(b, s.Content...)
	}
	return string(b)
}

// Composer turns active captions into styled lines.
type Composer struct {
	Palette      Palette
	Styles       *Styles
	Highlighting bool
}

func NewComposer(p Palette, styles *Styles) *Composer {
	return &Composer{Palette: p, Styles: styles, Highlighting: true}
}

// Compose builds one line per language in langs that has an active caption,
// in the order given.
func (c *Composer) Compose(active map[string]caption.Entry, langs []string) []Line {
	lines := make([]Line, 0, len(langs))
	for _, lang := range langs {
		e, ok := active[lang]
		if !ok {
			continue
		}
		lines = append(lines, c.ComposeEntry(lang, e))
	}
	return lines
}

// ComposeEntry styles a single caption entry for lang.
func (c *Composer) ComposeEntry(lang string, e caption.Entry) Line {
	dark := c.Styles.Dark()
	style := Resolve(lang, c.Styles.Ensure(lang), dark)

	parsed := caption.Parse(e.Annotated)
	segs := make([]Styled, 0, len(parsed))
	for _, p := range parsed {
		s := Styled{Kind: p.Kind, Content: p.Content, Color: style.Color}
		if c.Highlighting && p.Kind != caption.None {
			s.Color = c.Palette.Color(p.Kind, dark)
			s.Underline = true
		}
		segs = append(segs, s)
	}
	return Line{Lang: lang, Style: style, Segments: segs}
}
