package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aschmelyun/captioncraft/internal/overlay"
	"github.com/aschmelyun/captioncraft/internal/render"
)

const DefaultPath = "captioncraft.yaml"

const envPrefix = "CAPTIONCRAFT_"

type Config struct {
	Placement    string `yaml:"placement" validate:"oneof=below overlay"`
	DarkMode     bool   `yaml:"dark_mode"`
	Highlighting bool   `yaml:"highlighting"`

	Palette      render.Palette                  `yaml:"palette"`
	DefaultStyle render.LanguageStyle            `yaml:"default_style"`
	Languages    map[string]render.LanguageStyle `yaml:"languages" validate:"dive"`

	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`

	Overlay  OverlayConfig  `yaml:"overlay"`
	Playback PlaybackConfig `yaml:"playback"`
	Source   SourceConfig   `yaml:"source"`
	Log      LogConfig      `yaml:"log"`

	path string
}

// OverlayConfig is the initial overlay box, in percent of the video area.
type OverlayConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Width float64 `yaml:"width"`
}

type PlaybackConfig struct {
	Tick     time.Duration `yaml:"tick" validate:"gte=10ms"`
	SeekStep float64       `yaml:"seek_step" validate:"gt=0"`
}

type SourceConfig struct {
	Dir     string        `yaml:"dir"`
	APIURL  string        `yaml:"api_url" validate:"omitempty,url"`
	Video   string        `yaml:"video"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	Retries uint64        `yaml:"retries" validate:"lte=10"`

	// Token is never read from the config file.
	Token string `yaml:"-"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

func defaultConfig() *Config {
	g := overlay.DefaultGeometry()
	return &Config{
		Placement:    "below",
		Highlighting: true,
		Palette:      render.DefaultPalette(),
		Overlay:      OverlayConfig{X: g.X, Y: g.Y, Width: g.Width},
		Playback: PlaybackConfig{
			Tick:     100 * time.Millisecond,
			SeekStep: 5,
		},
		Source: SourceConfig{
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Log: LogConfig{
			File:  "captioncraft.log",
			Level: "info",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	c := defaultConfig()
	c.normalize()
	return c
}

// Load reads the YAML file at path over the defaults, applies CAPTIONCRAFT_*
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := defaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path is the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

func (c *Config) applyEnv() {
	c.Placement = getenvDefault("PLACEMENT", c.Placement)
	c.DarkMode = getenvBool("DARK_MODE", c.DarkMode)
	c.Highlighting = getenvBool("HIGHLIGHTING", c.Highlighting)
	c.Primary = getenvDefault("PRIMARY", c.Primary)
	c.Secondary = getenvDefault("SECONDARY", c.Secondary)
	c.Source.Dir = getenvDefault("SOURCE_DIR", c.Source.Dir)
	c.Source.APIURL = getenvDefault("API_URL", c.Source.APIURL)
	c.Source.Video = getenvDefault("VIDEO", c.Source.Video)
	c.Source.Token = getenvDefault("API_TOKEN", c.Source.Token)
	c.Log.File = getenvDefault("LOG_FILE", c.Log.File)
	c.Log.Level = getenvDefault("LOG_LEVEL", c.Log.Level)
}

func (c *Config) normalize() {
	c.Placement = strings.ToLower(strings.TrimSpace(c.Placement))
	if c.Placement == "" {
		c.Placement = "below"
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Primary = strings.TrimSpace(c.Primary)
	c.Secondary = strings.TrimSpace(c.Secondary)
	if c.Secondary == c.Primary {
		c.Secondary = ""
	}
	c.Source.APIURL = strings.TrimRight(strings.TrimSpace(c.Source.APIURL), "/")

	if c.Playback.Tick <= 0 {
		c.Playback.Tick = 100 * time.Millisecond
	}
	if c.Playback.SeekStep <= 0 {
		c.Playback.SeekStep = 5
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = 30 * time.Second
	}

	g := c.Geometry()
	c.Overlay = OverlayConfig{X: g.X, Y: g.Y, Width: g.Width}
}

// Geometry is the clamped initial overlay geometry.
func (c *Config) Geometry() overlay.Geometry {
	return overlay.Geometry{X: c.Overlay.X, Y: c.Overlay.Y, Width: c.Overlay.Width}.Clamped()
}

// Validate checks field constraints, including palette colour names.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
		return render.IsPaletteName(fl.Field().String())
	})
	return v
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(getenvDefault(key, "")); err == nil {
		return b
	}
	return def
}
