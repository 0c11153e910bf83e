package dictionary

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/japaniel/kanastudy/pkg/vocab"
)

// Tagger suggests word types from kagome's IPA part-of-speech labels.
type Tagger struct {
	t *tokenizer.Tokenizer
}

// NewTagger creates a tokenizer over the IPA dictionary.
func NewTagger() (*Tagger, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Tagger{t: t}, nil
}

// Suggest returns the type of a single-morpheme word, the head's type for an
// inflected verb or adjective, WordTypePhrase for anything longer, and
// WordTypeNone when nothing is recognised.
func (tg *Tagger) Suggest(word string) vocab.WordType {
	return suggestFromPOS(tg.partsOfSpeech(word))
}

// partsOfSpeech returns the IPA feature list of every non-symbol token.
func (tg *Tagger) partsOfSpeech(word string) [][]string {
	var out [][]string
	for _, token := range tg.t.Tokenize(word) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		// IPA features: 0 POS, 1-3 sub-POS, 4-5 conjugation, 6 base form,
		// 7 reading, 8 pronunciation.
		features := token.Features()
		if len(features) == 0 || features[0] == "記号" {
			continue
		}
		out = append(out, features)
	}
	return out
}

func suggestFromPOS(tokens [][]string) vocab.WordType {
	switch len(tokens) {
	case 0:
		return vocab.WordTypeNone
	case 1:
		return typeForPOS(tokens[0])
	}
	head := tokens[0]
	if head[0] == "動詞" || head[0] == "形容詞" {
		inflection := true
		for _, f := range tokens[1:] {
			if !isInflectionTail(f) {
				inflection = false
				break
			}
		}
		if inflection {
			return typeForPOS(head)
		}
	}
	return vocab.WordTypePhrase
}

// isInflectionTail reports whether a token only continues the conjugation of
// the token before it (たべ|た, たべ|て, たべ|させ|られる).
func isInflectionTail(features []string) bool {
	sub := ""
	if len(features) > 1 {
		sub = features[1]
	}
	switch features[0] {
	case "助動詞":
		return true
	case "助詞":
		return sub == "接続助詞"
	case "動詞":
		return sub == "非自立" || sub == "接尾"
	}
	return false
}

func typeForPOS(features []string) vocab.WordType {
	sub := ""
	if len(features) > 1 {
		sub = features[1]
	}
	switch features[0] {
	case "名詞":
		switch sub {
		case "代名詞":
			return vocab.WordTypePronoun
		case "数":
			return vocab.WordTypeQuantifier
		}
		return vocab.WordTypeNoun
	case "動詞":
		return vocab.WordTypeVerb
	case "形容詞", "連体詞":
		return vocab.WordTypeAdjective
	case "副詞":
		return vocab.WordTypeAdverb
	case "接続詞":
		return vocab.WordTypeConjunction
	case "感動詞":
		return vocab.WordTypeInterjection
	case "助動詞":
		return vocab.WordTypeAuxiliary
	case "助詞":
		return vocab.WordTypePreposition
	}
	return vocab.WordTypeNone
}
