package render

import "strings"

// Styles holds one LanguageStyle per language. Entries are created on first
// use and never removed.
type Styles struct {
	dark     bool
	base     LanguageStyle
	byLang   map[string]LanguageStyle
	override map[string]LanguageStyle
}

// NewStyles creates a store whose new entries start from base, with theme
// defaults filling its zero fields. overrides seed specific languages.
func NewStyles(base LanguageStyle, overrides map[string]LanguageStyle, dark bool) *Styles {
	s := &Styles{
		dark:     dark,
		base:     base,
		byLang:   make(map[string]LanguageStyle),
		override: make(map[string]LanguageStyle, len(overrides)),
	}
	for lang, o := range overrides {
		s.override[lang] = o
	}
	return s
}

// Ensure returns the style of lang, creating it from defaults if needed.
func (s *Styles) Ensure(lang string) LanguageStyle {
	if st, ok := s.byLang[lang]; ok {
		return st
	}
	st := s.base.withDefaults(s.dark)
	if o, ok := s.override[lang]; ok {
		st = merge(st, o)
	}
	s.byLang[lang] = st
	return st
}

// Get returns the stored style of lang without creating one.
func (s *Styles) Get(lang string) (LanguageStyle, bool) {
	st, ok := s.byLang[lang]
	return st, ok
}

// Update applies fn to the style of lang, creating it first if needed.
func (s *Styles) Update(lang string, fn func(*LanguageStyle)) LanguageStyle {
	st := s.Ensure(lang)
	fn(&st)
	s.byLang[lang] = st
	return st
}

func (s *Styles) Dark() bool { return s.dark }

// SetDark switches the theme. Languages still using the previous theme's
// default text colour follow the new theme; custom colours are kept.
func (s *Styles) SetDark(dark bool) {
	if dark == s.dark {
		return
	}
	s.dark = dark
	for lang, st := range s.byLang {
		if strings.EqualFold(st.TextColor, lightText) || strings.EqualFold(st.TextColor, darkText) {
			st.TextColor = DefaultTextColor(dark)
			s.byLang[lang] = st
		}
	}
}

func merge(st, o LanguageStyle) LanguageStyle {
	if o.FontFamily != "" {
		st.FontFamily = o.FontFamily
	}
	if o.FontSize != 0 {
		st.FontSize = o.FontSize
	}
	if o.FontWeight != 0 {
		st.FontWeight = o.FontWeight
	}
	if o.TextColor != "" {
		st.TextColor = o.TextColor
	}
	if o.LetterSpacing != 0 {
		st.LetterSpacing = o.LetterSpacing
	}
	return st
}
