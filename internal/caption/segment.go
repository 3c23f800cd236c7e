package caption

import "strings"

// Segment is a contiguous run of annotated caption text. Kind is None for
// plain text.
type Segment struct {
	Kind    Category
	Content string
}

var tagNames = [...]Category{Noun, Verb, Adjective}

// Parse splits annotated text into plain and tagged segments. A tagged
// segment is <name>content</name> where both names match and content holds
// no line break; the earliest closing tag ends the segment. Anything that
// does not form such a pair, including unterminated or mismatched tags, is
// kept as plain text.
func Parse(s string) []Segment {
	var (
		segments []Segment
		plain    = 0
		pos      = 0
		sc       = newCloseScanner(s)
	)

	for pos < len(s) {
		lt := strings.IndexByte(s[pos:], '<')
		if lt < 0 {
			break
		}
		open := pos + lt

		cat, contentStart, ok := matchOpenTag(s, open)
		if !ok {
			pos = open + 1
			continue
		}
		closeAt, ok := sc.closing(cat, contentStart)
		if !ok {
			pos = open + 1
			continue
		}

		if open > plain {
			segments = append(segments, Segment{Kind: None, Content: s[plain:open]})
		}
		segments = append(segments, Segment{Kind: cat, Content: s[contentStart:closeAt]})
		pos = closeAt + len(cat.String()) + 3
		plain = pos
	}

	if plain < len(s) {
		segments = append(segments, Segment{Kind: None, Content: s[plain:]})
	}
	return segments
}

// Strip returns the annotated text with every recognised tag pair removed.
func Strip(s string) string {
	var b strings.Builder
	for _, seg := range Parse(s) {
		b.WriteString(seg.Content)
	}
	return b.String()
}

func matchOpenTag(s string, at int) (Category, int, bool) {
	for _, cat := range tagNames {
		tag := "<" + cat.String() + ">"
		if strings.HasPrefix(s[at:], tag) {
			return cat, at + len(tag), true
		}
	}
	return None, 0, false
}

// closeScanner remembers, per tag name, where the next closing tag sits so
// repeated unterminated openings do not rescan the rest of the input.
type closeScanner struct {
	s         string
	next      map[Category]int
	lineBreak int
}

func newCloseScanner(s string) *closeScanner {
	return &closeScanner{s: s, next: make(map[Category]int, len(tagNames)), lineBreak: -2}
}

func (c *closeScanner) closing(cat Category, from int) (int, bool) {
	at, seen := c.next[cat]
	if !seen || (at >= 0 && at < from) {
		at = indexFrom(c.s, "</"+cat.String()+">", from)
		c.next[cat] = at
	}
	if at < 0 {
		return 0, false
	}
	if br := c.nextLineBreak(from); br >= 0 && br < at {
		return 0, false
	}
	return at, true
}

func (c *closeScanner) nextLineBreak(from int) int {
	if c.lineBreak == -2 || (c.lineBreak >= 0 && c.lineBreak < from) {
		c.lineBreak = indexLineBreak(c.s, from)
	}
	return c.lineBreak
}

func indexFrom(s, sub string, from int) int {
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

func indexLineBreak(s string, from int) int {
	i := strings.IndexAny(s[from:], "\n\r\u2028\u2029")
	if i < 0 {
		return -1
	}
	return from + i
}
