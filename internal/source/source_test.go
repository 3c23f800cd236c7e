package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/aschmelyun/captioncraft/internal/caption"
)

type fakeSource map[string][]caption.RawCaption

func (f fakeSource) Fetch(ctx context.Context, lang string) ([]caption.RawCaption, error) {
	caps, ok := f[lang]
	if !ok {
		return nil, ErrNoTranscript
	}
	return caps, nil
}

func TestLoadAll_IsolatesFailures(t *testing.T) {
	src := fakeSource{
		"en": {{Text: "hello", Start: 0, Duration: 1}},
		"es": {{Text: "hola", Start: 0, Duration: 1}},
	}
	res := LoadAll(context.Background(), src, []string{"en", "fr", "es", "en", ""}, zaptest.NewLogger(t))

	if got := res.Loaded(); len(got) != 2 || got[0] != "en" || got[1] != "es" {
		t.Fatalf("loaded = %v", got)
	}
	if !errors.Is(res.Errors["fr"], ErrNoTranscript) {
		t.Fatalf("fr error = %v", res.Errors["fr"])
	}
	if res.Summary() != "Loaded captions in 2 languages, 1 failed" {
		t.Fatalf("summary = %q", res.Summary())
	}
}

func TestDefaultPrimary(t *testing.T) {
	if got := DefaultPrimary([]string{"de", "en"}); got != "en" {
		t.Fatalf("got %q", got)
	}
	if got := DefaultPrimary([]string{"de", "fr"}); got != "de" {
		t.Fatalf("got %q", got)
	}
	if got := DefaultPrimary(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestFileSource_JSONAndVTT(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.json"), `[{"text":"a new day","start":0.5,"duration":2}]`)
	writeFile(t, filepath.Join(dir, "fr.json"), `{"video_id":"x","transcript":[{"text":"bonjour","start":1,"duration":1}]}`)
	writeFile(t, filepath.Join(dir, "de.vtt"), "WEBVTT\n\n1\n00:00:01.000 --> 00:00:03.500\nGuten\nTag\n\n00:04.000 --> 00:05.000\nZwei\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	src := NewFileSource(dir)
	ctx := context.Background()

	en, err := src.Fetch(ctx, "en")
	if err != nil || len(en) != 1 || en[0].Text != "a new day" || en[0].Start != 0.5 || en[0].Duration != 2 {
		t.Fatalf("en = %+v, %v", en, err)
	}
	fr, err := src.Fetch(ctx, "fr")
	if err != nil || len(fr) != 1 || fr[0].Text != "bonjour" {
		t.Fatalf("fr = %+v, %v", fr, err)
	}
	de, err := src.Fetch(ctx, "de")
	if err != nil || len(de) != 2 {
		t.Fatalf("de = %+v, %v", de, err)
	}
	if de[0].Text != "Guten Tag" || de[0].Start != 1 || de[0].Duration != 2.5 {
		t.Fatalf("de[0] = %+v", de[0])
	}
	if de[1].Start != 4 || de[1].Duration != 1 {
		t.Fatalf("de[1] = %+v", de[1])
	}
	if _, err := src.Fetch(ctx, "ja"); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("ja err = %v", err)
	}

	infos, err := src.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if codes := Codes(infos); len(codes) != 3 || codes[0] != "de" || codes[1] != "en" || codes[2] != "fr" {
		t.Fatalf("codes = %v", codes)
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	if _, err := DecodeJSON([]byte("")); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := DecodeJSON([]byte(`{"error":"No transcript found"}`)); err == nil {
		t.Fatal("expected error payload to fail")
	}
	if _, err := DecodeJSON([]byte(`{"something":1}`)); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err = %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	var transcriptCalls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization header = %q", got)
		}
		if r.URL.Query().Get("videoId") != "zy2Zj8yIe6c" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "No video ID provided"})
			return
		}
		switch r.URL.Path {
		case "/api/list-transcripts":
			json.NewEncoder(w).Encode(map[string]any{
				"video_id": "zy2Zj8yIe6c",
				"transcripts": []map[string]any{
					{"language": "English", "language_code": "en"},
					{"language": "English (auto)", "language_code": "en", "is_generated": true},
					{"language": "French", "language_code": "fr"},
				},
			})
		case "/api/get-transcript":
			switch r.URL.Query().Get("lang") {
			case "en":
				// first attempt fails, retry succeeds
				if transcriptCalls.Add(1) == 1 {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				json.NewEncoder(w).Encode(map[string]any{
					"video_id":   "zy2Zj8yIe6c",
					"language":   "en",
					"transcript": []map[string]any{{"text": "hello", "start": 0, "duration": 1.5}},
				})
			default:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": "No transcript found"})
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	src := NewHTTPSource(ts.URL+"/", "zy2Zj8yIe6c", 5*time.Second, WithToken("secret"), WithLogger(zaptest.NewLogger(t)))
	ctx := context.Background()

	infos, err := src.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 || infos[0].Language != "English" || infos[1].LanguageCode != "fr" {
		t.Fatalf("infos = %+v", infos)
	}

	en, err := src.Fetch(ctx, "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(en) != 1 || en[0].Text != "hello" || en[0].Duration != 1.5 {
		t.Fatalf("en = %+v", en)
	}
	if transcriptCalls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", transcriptCalls.Load())
	}

	if _, err := src.Fetch(ctx, "fr"); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("fr err = %v", err)
	}

	res := LoadAll(ctx, src, []string{"en", "fr"}, nil)
	if len(res.Captions["en"]) != 1 || res.Errors["fr"] == nil {
		t.Fatalf("partial load = %+v", res)
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=zy2Zj8yIe6c", "zy2Zj8yIe6c", true},
		{"https://youtu.be/D9Ihs241zeg", "D9Ihs241zeg", true},
		{"https://www.youtube.com/embed/D9Ihs241zeg?start=4", "D9Ihs241zeg", true},
		{"D9Ihs241zeg", "D9Ihs241zeg", true},
		{"https://example.com/page", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractVideoID(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ExtractVideoID(%q) = (%q,%v), want (%q,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
