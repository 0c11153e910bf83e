package vocab

import (
	"strconv"
	"strings"
)

// WordType is the part of speech assigned to an entry. The zero value means
// the entry has not been classified yet.
type WordType string

const (
	WordTypeNone         WordType = ""
	WordTypeNoun         WordType = "noun"
	WordTypePronoun      WordType = "pronoun"
	WordTypeVerb         WordType = "verb"
	WordTypeAdjective    WordType = "adjective"
	WordTypeAdverb       WordType = "adverb"
	WordTypePreposition  WordType = "preposition"
	WordTypeConjunction  WordType = "conjunction"
	WordTypeInterjection WordType = "interjection"
	WordTypeArticle      WordType = "article"
	WordTypeQuantifier   WordType = "quantifier"
	WordTypeAuxiliary    WordType = "auxiliary"
	WordTypePhrase       WordType = "phrase"
)

// WordTypes lists the classified types in menu order (1-based).
var WordTypes = []WordType{
	WordTypeNoun,
	WordTypePronoun,
	WordTypeVerb,
	WordTypeAdjective,
	WordTypeAdverb,
	WordTypePreposition,
	WordTypeConjunction,
	WordTypeInterjection,
	WordTypeArticle,
	WordTypeQuantifier,
	WordTypeAuxiliary,
	WordTypePhrase,
}

func (t WordType) String() string {
	if t == WordTypeNone {
		return "unclassified"
	}
	return string(t)
}

// IsValid reports whether t is one of the classified types.
func (t WordType) IsValid() bool {
	switch t {
	case WordTypeNoun, WordTypePronoun, WordTypeVerb, WordTypeAdjective,
		WordTypeAdverb, WordTypePreposition, WordTypeConjunction,
		WordTypeInterjection, WordTypeArticle, WordTypeQuantifier,
		WordTypeAuxiliary, WordTypePhrase:
		return true
	}
	return false
}

// WordTypeFromNumber maps a menu number to a type. 0 and out-of-range numbers
// yield WordTypeNone.
func WordTypeFromNumber(n int) WordType {
	if n < 1 || n > len(WordTypes) {
		return WordTypeNone
	}
	return WordTypes[n-1]
}

// ParseWordType accepts a menu number or a type name (case-insensitive).
// Any other value yields WordTypeNone. The bool reports whether s was a
// number or a known name.
func ParseWordType(s string) (WordType, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return WordTypeFromNumber(n), true
	}
	t := WordType(strings.ToLower(s))
	if t.IsValid() {
		return t, true
	}
	return WordTypeNone, false
}
