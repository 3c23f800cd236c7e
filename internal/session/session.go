// Package session holds the state of one caption player: loaded tracks,
// language selection, display preferences and the overlay box.
package session

import (
	"go.uber.org/zap"

	"github.com/aschmelyun/captioncraft/internal/caption"
	"github.com/aschmelyun/captioncraft/internal/overlay"
	"github.com/aschmelyun/captioncraft/internal/render"
	"github.com/aschmelyun/captioncraft/internal/source"
)

// Placement is where captions are drawn relative to the video area.
type Placement int

const (
	Below Placement = iota
	Overlay
)

func (p Placement) String() string {
	if p == Overlay {
		return "overlay"
	}
	return "below"
}

// ParsePlacement accepts "below" and "overlay"; anything else is Below.
func ParsePlacement(s string) Placement {
	if s == "overlay" {
		return Overlay
	}
	return Below
}

// Rank is the slot a selected language occupies.
type Rank int

const (
	Unranked Rank = iota
	Primary
	Secondary
)

func (r Rank) String() string {
	switch r {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return "none"
}

type Options struct {
	Palette      render.Palette
	BaseStyle    render.LanguageStyle
	Overrides    map[string]render.LanguageStyle
	Dark         bool
	Highlighting bool
	Placement    Placement
	Geometry     overlay.Geometry
	Primary      string
	Secondary    string
	Classifier   *caption.Classifier
	Logger       *zap.Logger
}

// DefaultOptions mirrors the player's out-of-the-box settings.
func DefaultOptions() Options {
	return Options{
		Palette:      render.DefaultPalette(),
		Highlighting: true,
		Placement:    Below,
		Geometry:     overlay.DefaultGeometry(),
	}
}

type Session struct {
	tracks    *caption.Tracks
	annotator *caption.Annotator
	styles    *render.Styles
	composer  *render.Composer
	overlay   *overlay.Controller
	placement Placement

	primary   string
	secondary string
	hidden    map[string]bool

	last source.Result
	log  *zap.Logger
}

func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	styles := render.NewStyles(opts.BaseStyle, opts.Overrides, opts.Dark)
	composer := render.NewComposer(opts.Palette, styles)
	composer.Highlighting = opts.Highlighting

	s := &Session{
		tracks:    caption.NewTracks(),
		annotator: caption.NewAnnotator(opts.Classifier),
		styles:    styles,
		composer:  composer,
		overlay:   overlay.NewController(opts.Geometry),
		hidden:    make(map[string]bool),
		log:       log,
	}
	s.SetRank(opts.Primary, Primary)
	s.SetRank(opts.Secondary, Secondary)
	s.SetPlacement(opts.Placement)
	return s
}

// Load indexes every language in res and records the failures. Each
// caption is annotated once here. A missing primary selection falls back to
// "en" or the first loaded language.
func (s *Session) Load(res source.Result) {
	for lang, raws := range res.Captions {
		idx := caption.BuildIndex(lang, raws, s.annotator)
		s.tracks.Add(idx)
		s.styles.Ensure(lang)
		s.log.Debug("language indexed", zap.String("lang", lang), zap.Int("entries", idx.Len()))
	}
	for lang, err := range res.Errors {
		s.tracks.MarkFailed(lang, err)
		s.log.Warn("language unavailable", zap.String("lang", lang), zap.Error(err))
	}
	s.last = res

	if s.primary == "" {
		if p := source.DefaultPrimary(s.tracks.Languages()); p != "" && p != s.secondary {
			s.primary = p
		}
	}
	s.log.Info(res.Summary(),
		zap.String("primary", s.primary),
		zap.String("secondary", s.secondary),
	)
}

// Status is the one-line load report, empty before the first Load.
func (s *Session) Status() string {
	if s.last.Captions == nil && s.last.Errors == nil {
		return ""
	}
	return s.last.Summary()
}

func (s *Session) Tracks() *caption.Tracks { return s.tracks }

func (s *Session) Styles() *render.Styles { return s.styles }

func (s *Session) Overlay() *overlay.Controller { return s.overlay }

// Duration is the end time of the latest caption across all languages.
func (s *Session) Duration() float64 {
	var d float64
	for _, lang := range s.tracks.Languages() {
		idx, err := s.tracks.Index(lang)
		if err != nil {
			continue
		}
		for _, e := range idx.Entries() {
			if e.End > d {
				d = e.End
			}
		}
	}
	return d
}

func (s *Session) Placement() Placement { return s.placement }

// SetPlacement switches placement. Overlay gestures are only accepted in
// Overlay placement.
func (s *Session) SetPlacement(p Placement) {
	s.placement = p
	s.overlay.SetEnabled(p == Overlay)
}

func (s *Session) TogglePlacement() Placement {
	if s.placement == Overlay {
		s.SetPlacement(Below)
	} else {
		s.SetPlacement(Overlay)
	}
	return s.placement
}

func (s *Session) Highlighting() bool { return s.composer.Highlighting }

func (s *Session) SetHighlighting(on bool) { s.composer.Highlighting = on }

func (s *Session) Dark() bool { return s.styles.Dark() }

// SetDark switches the theme; languages with a custom text colour keep it.
func (s *Session) SetDark(dark bool) { s.styles.SetDark(dark) }

// Rank reports the slot lang occupies.
func (s *Session) Rank(lang string) Rank {
	switch {
	case lang == "":
		return Unranked
	case lang == s.primary:
		return Primary
	case lang == s.secondary:
		return Secondary
	}
	return Unranked
}

// SetRank puts lang in rank, clearing it from any other rank first. Unranked
// removes it from the selection.
func (s *Session) SetRank(lang string, r Rank) {
	if lang == "" {
		return
	}
	if s.primary == lang {
		s.primary = ""
	}
	if s.secondary == lang {
		s.secondary = ""
	}
	switch r {
	case Primary:
		s.primary = lang
	case Secondary:
		s.secondary = lang
	}
}

// Selected returns the selected languages in rank order.
func (s *Session) Selected() []string {
	langs := make([]string, 0, 2)
	if s.primary != "" {
		langs = append(langs, s.primary)
	}
	if s.secondary != "" {
		langs = append(langs, s.secondary)
	}
	return langs
}

func (s *Session) Hidden(lang string) bool { return s.hidden[lang] }

// ToggleHidden flips the visibility of lang and returns the new hidden state.
func (s *Session) ToggleHidden(lang string) bool {
	if s.hidden[lang] {
		delete(s.hidden, lang)
		return false
	}
	s.hidden[lang] = true
	return true
}

// Visible returns the selected, non-hidden languages in rank order.
func (s *Session) Visible() []string {
	var langs []string
	for _, lang := range s.Selected() {
		if !s.hidden[lang] {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Unavailable returns the selected languages that failed to load or were
// never loaded.
func (s *Session) Unavailable() []string {
	var langs []string
	for _, lang := range s.Selected() {
		if !s.tracks.Available(lang) {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Frame styles the active caption of every visible language at time t.
// Languages without an active caption are omitted.
func (s *Session) Frame(t float64) []render.Line {
	langs := s.Visible()
	return s.composer.Compose(s.tracks.ActiveAt(t, langs...), langs)
}
