package render

import (
	"fmt"
	"strconv"
)

const (
	lightText = "#000000"
	darkText  = "#FFFFFF"

	DefaultFontFamily = "Arial / Helvetica"
	DefaultFontSize   = 16
	DefaultFontWeight = 400
)

// DefaultTextColor is the caption colour of the light or dark theme.
func DefaultTextColor(dark bool) string {
	if dark {
		return darkText
	}
	return lightText
}

// LanguageStyle is the per-language caption customization.
type LanguageStyle struct {
	FontFamily    string  `yaml:"font_family"`
	FontSize      float64 `yaml:"font_size" validate:"omitempty,gt=0,lte=200"`
	FontWeight    int     `yaml:"font_weight" validate:"omitempty,min=100,max=900"`
	TextColor     string  `yaml:"text_color" validate:"omitempty,hexcolor"`
	LetterSpacing float64 `yaml:"letter_spacing" validate:"gte=-10,lte=50"`
}

func DefaultStyle(dark bool) LanguageStyle {
	return LanguageStyle{
		FontFamily:    DefaultFontFamily,
		FontSize:      DefaultFontSize,
		FontWeight:    DefaultFontWeight,
		TextColor:     DefaultTextColor(dark),
		LetterSpacing: 0,
	}
}

// withDefaults fills zero fields from the theme defaults.
func (s LanguageStyle) withDefaults(dark bool) LanguageStyle {
	d := DefaultStyle(dark)
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	if s.FontWeight == 0 {
		s.FontWeight = d.FontWeight
	}
	if s.TextColor == "" {
		s.TextColor = d.TextColor
	}
	return s
}

var fontStacks = map[string]string{
	"Arial / Helvetica": "Arial, Helvetica, sans-serif",
	"Lexend":            "Lexend, Arial, sans-serif",
	"Nunito Sans":       "Nunito Sans, Arial, sans-serif",
	"Chewy":             "Chewy, cursive",
	"Open Sans":         "Open Sans, Arial, sans-serif",
	"Verdana":           "Verdana, Geneva, sans-serif",
	"Shizuru":           "Shizuru, cursive",
}

// FontStack maps a font option to its CSS font-family list.
func FontStack(option string) string {
	if stack, ok := fontStacks[option]; ok {
		return stack
	}
	return fontStacks[DefaultFontFamily]
}

var rtlLanguages = map[string]bool{"ar": true, "fa": true, "he": true, "ur": true}

// IsRTL reports whether lang is written right to left.
func IsRTL(lang string) bool { return rtlLanguages[lang] }

// Resolved is a LanguageStyle expanded into display values.
type Resolved struct {
	FontFamily    string
	FontSize      string
	FontWeight    string
	Color         string
	LetterSpacing string
	Direction     string

	Bold    bool
	Spacing int // extra terminal cells between characters
}

// cellPixels approximates the width of a terminal cell in CSS pixels.
const cellPixels = 8

func Resolve(lang string, s LanguageStyle, dark bool) Resolved {
	s = s.withDefaults(dark)
	dir := "ltr"
	if IsRTL(lang) {
		dir = "rtl"
	}
	spacing := 0
	if s.LetterSpacing > 0 {
		spacing = int(s.LetterSpacing) / cellPixels
	}
	return Resolved{
		FontFamily:    FontStack(s.FontFamily),
		FontSize:      pixels(s.FontSize),
		FontWeight:    strconv.Itoa(s.FontWeight),
		Color:         s.TextColor,
		LetterSpacing: pixels(s.LetterSpacing),
		Direction:     dir,
		Bold:          s.FontWeight >= 600,
		Spacing:       spacing,
	}
}

func pixels(v float64) string {
	return fmt.Sprintf("%spx", strconv.FormatFloat(v, 'f', -1, 64))
}
