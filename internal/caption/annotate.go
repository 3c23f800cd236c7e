package caption

import (
	"strings"
	"unicode"
)

// Annotator wraps classified words of a caption in <category> markers.
type Annotator struct {
	classifier *Classifier
}

func NewAnnotator(c *Classifier) *Annotator {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Annotator{classifier: c}
}

// Annotate tokenizes text on whitespace runs and rejoins the tokens with a
// single space. For a classified token, the first occurrence of its
// normalized form inside the original token is replaced by
// <category>normalized</category>; when the original token does not contain
// the normalized form verbatim (different case, inner punctuation), the token
// is emitted unchanged.
func (a *Annotator) Annotate(text string) string {
	tokens := splitWhitespace(text)
	var b strings.Builder
	b.Grow(len(text) + len(tokens)*8)

	for i, token := range tokens {
		word := Normalize(token)
		if cat := a.classifier.lookup(word); cat != None {
			name := cat.String()
			b.WriteString(strings.Replace(token, word, "<"+name+">"+word+"</"+name+">", 1))
		} else {
			b.WriteString(token)
		}
		if i < len(tokens)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// splitWhitespace splits s around runs of whitespace. Leading or trailing
// whitespace yields an empty first or last token, so "  a" becomes ["", "a"].
func splitWhitespace(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				tokens = append(tokens, s[start:i])
				inSpace = true
			}
			continue
		}
		if inSpace {
			start = i
			inSpace = false
		}
	}
	if inSpace {
		tokens = append(tokens, "")
	} else {
		tokens = append(tokens, s[start:])
	}
	return tokens
}
