package caption

import (
	"strings"
	"unicode"
)

// Category is the grammatical class a caption word is styled by.
type Category int

const (
	None Category = iota
	Noun
	Verb
	Adjective
)

func (c Category) String() string {
	switch c {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	default:
		return "none"
	}
}

// ParseCategory maps a tag name back to its category.
func ParseCategory(name string) (Category, bool) {
	switch name {
	case "noun":
		return Noun, true
	case "verb":
		return Verb, true
	case "adjective":
		return Adjective, true
	}
	return None, false
}

var (
	commonNouns = []string{
		"person", "time", "year", "way", "day", "thing", "man", "world", "life", "hand",
		"part", "child", "eye", "woman", "place", "work", "week", "case", "point",
		"government", "company", "number", "group", "problem", "fact",
	}
	commonVerbs = []string{
		"be", "have", "do", "say", "go", "can", "get", "would", "make", "know", "will",
		"think", "take", "see", "come", "could", "want", "look", "use", "find", "give",
		"tell", "work", "may", "should", "call", "try", "ask", "need", "feel", "become",
		"leave", "put", "mean", "keep", "let", "begin", "seem", "help", "talk", "turn",
		"start", "might", "show", "hear", "play", "run", "move", "like", "live",
		"believe", "hold", "bring", "happen", "must", "write", "provide",
	}
	commonAdjectives = []string{
		"good", "new", "first", "last", "long", "great", "little", "own", "other", "old",
		"right", "big", "high", "different", "small", "large", "next", "early", "young",
		"important", "few", "public", "bad", "same", "able", "true",
	}
)

// Vocabulary holds the word lists a Classifier looks tokens up in.
type Vocabulary struct {
	Nouns      []string
	Verbs      []string
	Adjectives []string
}

// DefaultVocabulary returns the built-in English word lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Nouns:      append([]string(nil), commonNouns...),
		Verbs:      append([]string(nil), commonVerbs...),
		Adjectives: append([]string(nil), commonAdjectives...),
	}
}

// Classifier assigns categories from fixed vocabularies. Lookup order is
// noun, verb, adjective; the first vocabulary containing the word wins.
type Classifier struct {
	nouns      map[string]struct{}
	verbs      map[string]struct{}
	adjectives map[string]struct{}
}

func NewClassifier(v Vocabulary) *Classifier {
	return &Classifier{
		nouns:      toSet(v.Nouns),
		verbs:      toSet(v.Verbs),
		adjectives: toSet(v.Adjectives),
	}
}

// DefaultClassifier is a Classifier over DefaultVocabulary.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultVocabulary())
}

// Classify normalizes token and returns its category, or None.
func (c *Classifier) Classify(token string) Category {
	return c.lookup(Normalize(token))
}

func (c *Classifier) lookup(word string) Category {
	if _, ok := c.nouns[word]; ok {
		return Noun
	}
	if _, ok := c.verbs[word]; ok {
		return Verb
	}
	if _, ok := c.adjectives[word]; ok {
		return Adjective
	}
	return None
}

// Normalize lower-cases token and drops every character that is neither a
// word character ([A-Za-z0-9_]) nor whitespace.
func Normalize(token string) string {
	lower := strings.ToLower(token)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
