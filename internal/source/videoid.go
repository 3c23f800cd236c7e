package source

import (
	"regexp"
	"strings"
)

var videoIDRegex = regexp.MustCompile(`^.*((youtu.be/)|(v/)|(/u/\w/)|(embed/)|(watch\?))\??v?=?([^#&?]*).*`)

var bareIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID returns the 11-character YouTube video ID from a watch,
// short, embed or /v/ URL, or from a bare ID.
func ExtractVideoID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if bareIDRegex.MatchString(s) {
		return s, true
	}
	m := videoIDRegex.FindStringSubmatch(s)
	if m == nil || len(m[7]) != 11 {
		return "", false
	}
	return m[7], true
}
