package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/aschmelyun/captioncraft/internal/caption"
)

// HTTPSource talks to a CaptionCraft transcript backend:
// GET /api/list-transcripts?videoId= and GET /api/get-transcript?videoId=&lang=.
type HTTPSource struct {
	BaseURL string
	VideoID string
	Token   string
	Retries uint64

	client *http.Client
	log    *zap.Logger
}

// HTTPOption customizes an HTTPSource.
type HTTPOption func(*HTTPSource)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

func WithLogger(l *zap.Logger) HTTPOption {
	return func(s *HTTPSource) { s.log = l }
}

func WithToken(token string) HTTPOption {
	return func(s *HTTPSource) { s.Token = token }
}

func WithRetries(n uint64) HTTPOption {
	return func(s *HTTPSource) { s.Retries = n }
}

func NewHTTPSource(baseURL, videoID string, timeout time.Duration, opts ...HTTPOption) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		VideoID: videoID,
		Retries: 3,
		client:  &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type apiError struct {
	Error string `json:"error"`
}

type listResponse struct {
	VideoID     string           `json:"video_id"`
	Transcripts []TranscriptInfo `json:"transcripts"`
}

type transcriptResponse struct {
	VideoID    string               `json:"video_id"`
	Language   string               `json:"language"`
	Transcript []caption.RawCaption `json:"transcript"`
}

// List returns the video's transcripts, one per language code.
func (s *HTTPSource) List(ctx context.Context) ([]TranscriptInfo, error) {
	var out listResponse
	if err := s.get(ctx, "/api/list-transcripts", url.Values{"videoId": {s.VideoID}}, &out); err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	return UniqueTranscripts(out.Transcripts), nil
}

func (s *HTTPSource) Fetch(ctx context.Context, lang string) ([]caption.RawCaption, error) {
	var out transcriptResponse
	q := url.Values{"videoId": {s.VideoID}, "lang": {lang}}
	if err := s.get(ctx, "/api/get-transcript", q, &out); err != nil {
		return nil, fmt.Errorf("get transcript %s: %w", lang, err)
	}
	return out.Transcript, nil
}

// statusError is a non-2xx answer from the backend.
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed with status %d", e.Code)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.Code, e.Message)
}

func (s *HTTPSource) get(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := s.BaseURL + path + "?" + q.Encode()

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			serr := &statusError{Code: resp.StatusCode, Message: errorMessage(body)}
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return serr
			}
			if resp.StatusCode == http.StatusNotFound {
				return backoff.Permanent(fmt.Errorf("%w: %w", ErrNoTranscript, serr))
			}
			return backoff.Permanent(serr)
		}

		if msg := errorMessage(body); msg != "" {
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNoTranscript, msg))
		}
		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 0
	notify := func(err error, wait time.Duration) {
		s.log.Warn("transcript request retry",
			zap.String("path", path),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(bo, s.Retries), ctx), notify)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}

func errorMessage(body []byte) string {
	var e apiError
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Error
}
