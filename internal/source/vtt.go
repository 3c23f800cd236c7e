package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aschmelyun/captioncraft/internal/caption"
)

var timeStampRegex = regexp.MustCompile(`^((?:\d+:)?\d{2}:\d{2}\.\d{3})\s+-->\s+((?:\d+:)?\d{2}:\d{2}\.\d{3})`)

// ParseVTT reads WebVTT cues as captions. Multi-line cue text is joined with
// a space; NOTE blocks and cue identifiers are skipped.
func ParseVTT(vttContent string) ([]caption.RawCaption, error) {
	lines := strings.Split(strings.ReplaceAll(vttContent, "\r\n", "\n"), "\n")
	var captions []caption.RawCaption

	var (
		inCue      bool
		inNote     bool
		start, end float64
		text       []string
	)
	flush := func() {
		if inCue && len(text) > 0 {
			captions = append(captions, caption.RawCaption{
				Text:     strings.Join(text, " "),
				Start:    start,
				Duration: end - start,
			})
		}
		inCue = false
		text = text[:0]
	}

	for i, line := range lines {
		line = strings.TrimSpace(line)

		if i == 0 && strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if line == "" {
			flush()
			inNote = false
			continue
		}
		if inNote {
			continue
		}
		if strings.HasPrefix(line, "NOTE") && !inCue {
			inNote = true
			continue
		}

		if matches := timeStampRegex.FindStringSubmatch(line); matches != nil {
			flush()
			var err error
			if start, err = parseTimeToSeconds(matches[1]); err != nil {
				return nil, fmt.Errorf("could not parse start time '%s': %w", matches[1], err)
			}
			if end, err = parseTimeToSeconds(matches[2]); err != nil {
				return nil, fmt.Errorf("could not parse end time '%s': %w", matches[2], err)
			}
			inCue = true
			continue
		}

		if inCue {
			text = append(text, line)
		}
	}
	flush()

	return captions, nil
}

func parseTimeToSeconds(timeStr string) (float64, error) {
	var hours, minutes int
	var seconds float64

	if strings.Count(timeStr, ":") == 1 {
		timeStr = "0:" + timeStr
	}
	_, err := fmt.Sscanf(timeStr, "%d:%d:%f", &hours, &minutes, &seconds)
	if err != nil {
		return 0, err
	}

	totalSeconds := float64(hours*3600) + float64(minutes*60) + seconds
	return totalSeconds, nil
}
