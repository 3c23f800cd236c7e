package caption

import (
	"math"
	"sort"
)

// RawCaption is one timed line as delivered by a transcript source.
type RawCaption struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Entry is an indexed caption. End is fixed at construction as
// Start+Duration and Annotated holds the tagged form of Text.
type Entry struct {
	Text      string
	Annotated string
	Start     float64
	Duration  float64
	End       float64
}

func NewEntry(raw RawCaption, a *Annotator) Entry {
	return Entry{
		Text:      raw.Text,
		Annotated: a.Annotate(raw.Text),
		Start:     raw.Start,
		Duration:  raw.Duration,
		End:       raw.Start + raw.Duration,
	}
}

// Contains reports whether t falls within [Start, End].
func (e Entry) Contains(t float64) bool {
	return e.Start <= t && t <= e.End
}

// Index is the ordered caption list of one language.
type Index struct {
	lang    string
	entries []Entry
	// ordered is true when every entry has End >= Start and never overlaps
	// the next one, which allows binary search.
	ordered bool
}

// BuildIndex annotates every caption once and keeps them in source order.
func BuildIndex(lang string, raws []RawCaption, a *Annotator) *Index {
	if a == nil {
		a = NewAnnotator(nil)
	}
	entries := make([]Entry, len(raws))
	for i, raw := range raws {
		entries[i] = NewEntry(raw, a)
	}
	return &Index{lang: lang, entries: entries, ordered: wellOrdered(entries)}
}

func (x *Index) Lang() string { return x.lang }

func (x *Index) Len() int { return len(x.entries) }

// Entries returns a copy of the indexed captions.
func (x *Index) Entries() []Entry {
	return append([]Entry(nil), x.entries...)
}

// ActiveAt returns the first entry, in list order, whose interval contains t.
// Entries with a negative duration are never active.
func (x *Index) ActiveAt(t float64) (Entry, bool) {
	if x == nil || len(x.entries) == 0 {
		return Entry{}, false
	}
	if x.ordered {
		i := sort.Search(len(x.entries), func(i int) bool { return x.entries[i].End >= t })
		if i < len(x.entries) && x.entries[i].Contains(t) {
			return x.entries[i], true
		}
		return Entry{}, false
	}
	for _, e := range x.entries {
		if e.Contains(t) {
			return e, true
		}
	}
	return Entry{}, false
}

func wellOrdered(entries []Entry) bool {
	for i, e := range entries {
		if math.IsNaN(e.Start) || math.IsNaN(e.End) || e.End < e.Start {
			return false
		}
		if i+1 < len(entries) && e.End > entries[i+1].Start {
			return false
		}
	}
	return true
}
