package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/aschmelyun/captioncraft/internal/config"
	"github.com/aschmelyun/captioncraft/internal/session"
	"github.com/aschmelyun/captioncraft/internal/source"
)

const keyringService = "captioncraft"

func loadTranscriptsCmd(ctx context.Context, src source.Source, langs []string, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		if len(langs) == 0 {
			lister, ok := src.(source.Lister)
			if !ok {
				return errorMsg{err: errors.New("no languages requested")}
			}
			infos, err := lister.List(ctx)
			if err != nil {
				return errorMsg{err: err}
			}
			langs = source.Codes(infos)
			if len(langs) == 0 {
				return errorMsg{err: source.ErrNoTranscript}
			}
		}
		return transcriptsLoadedMsg{result: source.LoadAll(ctx, src, langs, log)}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// newSource picks the HTTP backend when an API URL is configured, otherwise
// the transcript directory.
func newSource(cfg *config.Config, log *zap.Logger) (source.Source, string, error) {
	if cfg.Source.APIURL != "" {
		if cfg.Source.Video == "" {
			return nil, "", errors.New("a video is required with an API source")
		}
		id, ok := source.ExtractVideoID(cfg.Source.Video)
		if !ok {
			return nil, "", fmt.Errorf("'%s' is not a valid video URL or ID", cfg.Source.Video)
		}
		src := source.NewHTTPSource(cfg.Source.APIURL, id, cfg.Source.Timeout,
			source.WithToken(cfg.Source.Token),
			source.WithRetries(cfg.Source.Retries),
			source.WithLogger(log.Named("http")),
		)
		return src, id, nil
	}

	dir := cfg.Source.Dir
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, "", fmt.Errorf("transcript directory: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("'%s' is not a directory", dir)
	}
	return source.NewFileSource(dir), dir, nil
}

// resolveToken reads the API token from the keyring, or prompts for one and
// saves it. An empty answer continues without a token.
func resolveToken() (string, error) {
	username := getSystemUser()

	token, err := keyring.Get(keyringService, username)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("read API token: %w", err)
	}
	if token != "" {
		fmt.Println(BulletStyle.Render("├") + TextStyle.Render("API token set for this session."))
		return token, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}
	fmt.Print(BulletStyle.Render("├") + TextStyle.Render("CAPTIONCRAFT_API_TOKEN not found, enter one (or leave empty): "))
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read API token: %w", err)
	}

	token = strings.TrimSpace(string(raw))
	if token == "" {
		return "", nil
	}
	if err := keyring.Set(keyringService, username, token); err != nil {
		return "", fmt.Errorf("save API token: %w", err)
	}
	fmt.Println(BulletStyle.Render("├") + TextStyle.Render("API token set for this session."))
	return token, nil
}

func languageItems(s *session.Session) []list.Item {
	tracks := s.Tracks()
	codes := append(tracks.Languages(), tracks.FailedLanguages()...)
	items := make([]list.Item, 0, len(codes))
	for _, code := range codes {
		items = append(items, item{code: code, rank: s.Rank(code), err: tracks.Failed(code)})
	}
	return items
}

// formatTimestamp renders seconds as M:SS, or H:MM:SS past the hour.
func formatTimestamp(sec float64) string {
	if math.IsNaN(sec) || sec < 0 {
		sec = 0
	}
	total := int(sec)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func progressBar(width int, frac float64) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(frac * float64(width)))
	filled = max(0, min(width, filled))
	return ProgressStyle.Render(strings.Repeat("━", filled)) +
		ProgressRestStyle.Render(strings.Repeat("─", width-filled))
}

func styleOutput(statuses []string) string {
	var styledStatuses []string
	for i, status := range statuses {
		bullet := "├"
		if i == len(statuses)-1 {
			bullet = "└"
		}
		styledStatuses = append(styledStatuses, BulletStyle.Render(bullet)+TextStyle.Render(status))
	}
	return strings.Join(styledStatuses, "\n") + "\n"
}

func getSystemUser() string {
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME") // Windows fallback
	}
	if username == "" {
		username = "anon" // Default fallback
	}

	return username
}
