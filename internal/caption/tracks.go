package caption

import (
	"errors"
	"sort"
)

var ErrLanguageUnavailable = errors.New("language unavailable")

// Tracks holds the index of every language that loaded and the load error of
// every language that did not. A language is in at most one of the two.
type Tracks struct {
	indexes map[string]*Index
	failed  map[string]error
}

func NewTracks() *Tracks {
	return &Tracks{
		indexes: make(map[string]*Index),
		failed:  make(map[string]error),
	}
}

func (t *Tracks) Add(idx *Index) {
	if idx == nil {
		return
	}
	delete(t.failed, idx.Lang())
	t.indexes[idx.Lang()] = idx
}

// MarkFailed records a load failure and drops any index held for lang.
func (t *Tracks) MarkFailed(lang string, err error) {
	if err == nil {
		err = ErrLanguageUnavailable
	}
	delete(t.indexes, lang)
	t.failed[lang] = err
}

func (t *Tracks) Index(lang string) (*Index, error) {
	if idx, ok := t.indexes[lang]; ok {
		return idx, nil
	}
	if err, ok := t.failed[lang]; ok {
		return nil, err
	}
	return nil, ErrLanguageUnavailable
}

func (t *Tracks) Available(lang string) bool {
	_, ok := t.indexes[lang]
	return ok
}

// Failed returns the recorded load error for lang, if any.
func (t *Tracks) Failed(lang string) error {
	return t.failed[lang]
}

// Languages returns the loaded language codes in sorted order.
func (t *Tracks) Languages() []string {
	return sortedKeys(t.indexes)
}

// FailedLanguages returns the language codes that failed to load, sorted.
func (t *Tracks) FailedLanguages() []string {
	return sortedKeys(t.failed)
}

// ActiveAt resolves the active caption of each requested language at time
// tm. Languages without an index or without an active caption are absent
// from the result.
func (t *Tracks) ActiveAt(tm float64, langs ...string) map[string]Entry {
	active := make(map[string]Entry, len(langs))
	for _, lang := range langs {
		idx, ok := t.indexes[lang]
		if !ok {
			continue
		}
		if e, ok := idx.ActiveAt(tm); ok {
			active[lang] = e
		}
	}
	return active
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
