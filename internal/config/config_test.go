package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aschmelyun/captioncraft/internal/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "captioncraft.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Placement != "below" || !cfg.Highlighting || cfg.DarkMode {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Palette != render.DefaultPalette() {
		t.Fatalf("palette = %+v", cfg.Palette)
	}
	if cfg.Playback.Tick != 100*time.Millisecond || cfg.Playback.SeekStep != 5 {
		t.Fatalf("playback = %+v", cfg.Playback)
	}
	if g := cfg.Geometry(); g.X != 50 || g.Y != 80 || g.Width != 40 {
		t.Fatalf("geometry = %+v", g)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
placement: Overlay
dark_mode: true
highlighting: false
palette:
  noun: Royal Purple
default_style:
  font_family: Lexend
  font_size: 20
languages:
  ar:
    text_color: "#ff0000"
    font_weight: 700
primary: es
secondary: es
playback:
  tick: 50ms
source:
  dir: ./captions
  retries: 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Placement != "overlay" || !cfg.DarkMode || cfg.Highlighting {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Palette.Noun != render.RoyalPurple || cfg.Palette.Verb != render.CherryRed {
		t.Fatalf("palette = %+v", cfg.Palette)
	}
	if cfg.DefaultStyle.FontFamily != "Lexend" || cfg.DefaultStyle.FontSize != 20 {
		t.Fatalf("default style = %+v", cfg.DefaultStyle)
	}
	if ar := cfg.Languages["ar"]; ar.TextColor != "#ff0000" || ar.FontWeight != 700 {
		t.Fatalf("ar = %+v", ar)
	}
	if cfg.Primary != "es" || cfg.Secondary != "" {
		t.Fatalf("primary=%q secondary=%q", cfg.Primary, cfg.Secondary)
	}
	if cfg.Playback.Tick != 50*time.Millisecond {
		t.Fatalf("tick = %v", cfg.Playback.Tick)
	}
	if cfg.Source.Dir != "./captions" || cfg.Source.Retries != 5 || cfg.Source.Timeout != 30*time.Second {
		t.Fatalf("source = %+v", cfg.Source)
	}
	if cfg.Path() != path {
		t.Fatalf("path = %q", cfg.Path())
	}
}

func TestLoad_OverlayIsClamped(t *testing.T) {
	cfg, err := Load(writeConfig(t, "overlay:\n  x: 150\n  y: -3\n  width: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Overlay.X != 100 || cfg.Overlay.Y != 0 || cfg.Overlay.Width != 20 {
		t.Fatalf("overlay = %+v", cfg.Overlay)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"placement", "placement: sideways\n", "Placement"},
		{"palette", "palette:\n  verb: Mauve\n", "Verb"},
		{"colour", "languages:\n  en:\n    text_color: red\n", "TextColor"},
		{"level", "log:\n  level: loud\n", "Level"},
		{"url", "source:\n  api_url: not a url\n", "APIURL"},
		{"yaml", "placement: [\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CAPTIONCRAFT_PLACEMENT", "overlay")
	t.Setenv("CAPTIONCRAFT_DARK_MODE", "true")
	t.Setenv("CAPTIONCRAFT_API_URL", "https://captions.example.com/")
	t.Setenv("CAPTIONCRAFT_API_TOKEN", "tok")
	t.Setenv("CAPTIONCRAFT_HIGHLIGHTING", "not-a-bool")

	cfg, err := Load(writeConfig(t, "placement: below\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Placement != "overlay" || !cfg.DarkMode || !cfg.Highlighting {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Source.APIURL != "https://captions.example.com" || cfg.Source.Token != "tok" {
		t.Fatalf("source = %+v", cfg.Source)
	}
}
