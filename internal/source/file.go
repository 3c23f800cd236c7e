package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aschmelyun/captioncraft/internal/caption"
)

// FileSource reads transcripts from a directory holding one file per
// language: <lang>.json (a caption array, or an object with a "transcript"
// array) or <lang>.vtt.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

var fileExtensions = []string{".json", ".vtt"}

func (s *FileSource) Fetch(ctx context.Context, lang string) ([]caption.RawCaption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, ext := range fileExtensions {
		path := filepath.Join(s.Dir, lang+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read transcript %s: %w", path, err)
		}
		return decodeFile(ext, data)
	}
	return nil, fmt.Errorf("%s in %s: %w", lang, s.Dir, ErrNoTranscript)
}

// List reports one transcript per supported file in Dir.
func (s *FileSource) List(ctx context.Context) ([]TranscriptInfo, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list transcripts in %s: %w", s.Dir, err)
	}
	var infos []TranscriptInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".vtt" {
			continue
		}
		code := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		infos = append(infos, TranscriptInfo{Language: code, LanguageCode: code})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].LanguageCode < infos[j].LanguageCode })
	return UniqueTranscripts(infos), nil
}

func decodeFile(ext string, data []byte) ([]caption.RawCaption, error) {
	switch ext {
	case ".json":
		return DecodeJSON(data)
	case ".vtt":
		return ParseVTT(string(data))
	}
	return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
}

// DecodeJSON accepts either a bare caption array or an object carrying the
// array under "transcript".
func DecodeJSON(data []byte) ([]caption.RawCaption, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode transcript: empty input")
	}

	if data[0] == '[' {
		var caps []caption.RawCaption
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&caps); err != nil {
			return nil, fmt.Errorf("decode transcript: %w", err)
		}
		return caps, nil
	}

	var wrapped struct {
		Transcript []caption.RawCaption `json:"transcript"`
		Error      string               `json:"error"`
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if wrapped.Error != "" {
		return nil, fmt.Errorf("transcript error: %s", wrapped.Error)
	}
	if wrapped.Transcript == nil {
		return nil, ErrNoTranscript
	}
	return wrapped.Transcript, nil
}
