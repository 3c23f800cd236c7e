// Package source delivers raw transcripts per language. Loading several
// languages runs concurrently and one language failing never affects the
// others.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aschmelyun/captioncraft/internal/caption"
)

var (
	ErrNoTranscript       = errors.New("no transcript for language")
	ErrUnsupportedFormat  = errors.New("unsupported transcript format")
	ErrTranscriptDisabled = errors.New("transcripts are disabled for this video")
)

// Source fetches the captions of one language.
type Source interface {
	Fetch(ctx context.Context, lang string) ([]caption.RawCaption, error)
}

// TranscriptInfo describes one available transcript.
type TranscriptInfo struct {
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}

// Lister is a Source that can enumerate its transcripts.
type Lister interface {
	Source
	List(ctx context.Context) ([]TranscriptInfo, error)
}

// Result is the outcome of LoadAll: captions for every language that loaded
// and the error of every language that did not.
type Result struct {
	Captions map[string][]caption.RawCaption
	Errors   map[string]error
	Elapsed  time.Duration
}

// Loaded returns the languages that loaded, sorted.
func (r Result) Loaded() []string {
	langs := make([]string, 0, len(r.Captions))
	for lang := range r.Captions {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Summary is a one-line status for the load.
func (r Result) Summary() string {
	if len(r.Errors) == 0 {
		return fmt.Sprintf("Successfully loaded captions in %d languages", len(r.Captions))
	}
	return fmt.Sprintf("Loaded captions in %d languages, %d failed", len(r.Captions), len(r.Errors))
}

// DefaultConcurrency bounds parallel fetches in LoadAll.
const DefaultConcurrency = 4

// LoadAll fetches every language in langs concurrently. Duplicate and empty
// codes are skipped.
func LoadAll(ctx context.Context, src Source, langs []string, log *zap.Logger) Result {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	res := Result{
		Captions: make(map[string][]caption.RawCaption),
		Errors:   make(map[string]error),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(DefaultConcurrency)

	for _, lang := range UniqueLanguages(langs) {
		g.Go(func() error {
			caps, err := src.Fetch(ctx, lang)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("transcript fetch failed", zap.String("lang", lang), zap.Error(err))
				res.Errors[lang] = err
				return nil
			}
			log.Debug("transcript fetched", zap.String("lang", lang), zap.Int("captions", len(caps)))
			res.Captions[lang] = caps
			return nil
		})
	}
	_ = g.Wait()

	res.Elapsed = time.Since(start)
	log.Info("transcripts loaded",
		zap.Int("loaded", len(res.Captions)),
		zap.Int("failed", len(res.Errors)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res
}

// UniqueLanguages drops empty and repeated codes, keeping first occurrences.
func UniqueLanguages(langs []string) []string {
	seen := make(map[string]bool, len(langs))
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// UniqueTranscripts keeps the first transcript listed for each language code.
func UniqueTranscripts(ts []TranscriptInfo) []TranscriptInfo {
	seen := make(map[string]bool, len(ts))
	out := make([]TranscriptInfo, 0, len(ts))
	for _, t := range ts {
		if seen[t.LanguageCode] {
			continue
		}
		seen[t.LanguageCode] = true
		out = append(out, t)
	}
	return out
}

// Codes returns the language codes of ts in order.
func Codes(ts []TranscriptInfo) []string {
	codes := make([]string, len(ts))
	for i, t := range ts {
		codes[i] = t.LanguageCode
	}
	return codes
}

// DefaultPrimary picks "en" when available, otherwise the first language.
func DefaultPrimary(langs []string) string {
	for _, l := range langs {
		if l == "en" {
			return l
		}
	}
	if len(langs) > 0 {
		return langs[0]
	}
	return ""
}
