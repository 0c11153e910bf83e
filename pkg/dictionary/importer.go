package dictionary

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/japaniel/kanastudy/pkg/vocab"
)

// TypeSuggester proposes a word type for a word. WordTypeNone means no
// suggestion.
type TypeSuggester interface {
	Suggest(word string) vocab.WordType
}

// Importer fills missing definitions and word types in a store.
type Importer struct {
	// Key: kanji or kana form. Value: entries carrying that form.
	index  map[string][]JMdictEntry
	logger *slog.Logger
}

// NewImporter builds an in-memory index of the provided dictionary.
func NewImporter(entries []JMdictEntry, logger *slog.Logger) *Importer {
	idx := make(map[string][]JMdictEntry)
	for _, e := range entries {
		for _, k := range e.Kanji {
			idx[k.Text] = append(idx[k.Text], e)
		}
		for _, k := range e.Kana {
			idx[k.Text] = append(idx[k.Text], e)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Importer{index: idx, logger: logger}
}

// FillResult counts the fields written by FillDefinitions.
type FillResult struct {
	Definitions int
	Types       int
}

// FillDefinitions gives every entry without a definition the gloss of its
// dictionary match, and every unclassified entry the type proposed by
// suggester. Existing values are never replaced. suggester may be nil.
func (im *Importer) FillDefinitions(store *vocab.Store, suggester TypeSuggester) FillResult {
	var res FillResult
	for _, e := range store.Entries() {
		def, typ := e.Definition, e.Type
		if def == "" {
			if gloss, ok := im.Gloss(e.Word); ok {
				def = gloss
				res.Definitions++
			}
		}
		if typ == vocab.WordTypeNone && suggester != nil {
			if s := suggester.Suggest(e.Word); s != vocab.WordTypeNone {
				typ = s
				res.Types++
			}
		}
		if def == e.Definition && typ == e.Type {
			continue
		}
		if err := store.SetMetadata(e.Word, typ, def); err != nil {
			im.logger.Warn("failed to update entry", "word", e.Word, "error", err)
		}
	}
	im.logger.Info("definitions filled", "definitions", res.Definitions, "types", res.Types)
	return res
}

// Lookup returns the entries whose kanji or kana forms equal word, or its
// hiragana form for katakana words, ordered by entry id.
func (im *Importer) Lookup(word string) []JMdictEntry {
	candidates := make(map[string]JMdictEntry) // dedupe by entry id
	search := func(term string) {
		if term == "" {
			return
		}
		for _, e := range im.index[term] {
			candidates[e.Id] = e
		}
	}
	search(word)
	if h := ToHiragana(word); h != word {
		search(h)
	}

	var results []JMdictEntry
	for _, entry := range candidates {
		if isMatch(entry, word) {
			results = append(results, entry)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Id < results[j].Id
	})
	return results
}

// Gloss returns the distinct glosses of the first matching entry joined
// with "; ".
func (im *Importer) Gloss(word string) (string, bool) {
	matches := im.Lookup(word)
	if len(matches) == 0 {
		return "", false
	}
	gloss := FormatGlosses(matches[0])
	return gloss, gloss != ""
}

func isMatch(entry JMdictEntry, word string) bool {
	normalized := ToHiragana(word)
	for _, k := range entry.Kanji {
		if k.Text == word {
			return true
		}
	}
	for _, k := range entry.Kana {
		if k.Text == word || ToHiragana(k.Text) == normalized {
			return true
		}
	}
	return false
}

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// FormatGlosses joins the English glosses of all senses, skipping repeats
// and glosses in other languages.
func FormatGlosses(e JMdictEntry) string {
	seen := make(map[string]bool)
	var glosses []string
	for _, s := range e.Sense {
		for _, g := range s.Gloss {
			text := strings.TrimSpace(g.Text)
			if text == "" || seen[text] || (g.Lang != "" && g.Lang != "eng") {
				continue
			}
			seen[text] = true
			glosses = append(glosses, text)
		}
	}
	return strings.Join(glosses, "; ")
}
