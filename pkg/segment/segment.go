// Package segment splits a character stream into runs of hiragana or katakana.
package segment

import (
	"errors"
	"io"
	"strings"
)

// Class is the script class of a single character.
type Class int

const (
	Neither Class = iota
	Hiragana
	Katakana
)

func (c Class) String() string {
	switch c {
	case Hiragana:
		return "hiragana"
	case Katakana:
		return "katakana"
	default:
		return "neither"
	}
}

// Classify reports which phonetic block r belongs to.
// Hiragana is U+3040..U+309F and katakana is U+30A0..U+30FF, both inclusive.
func Classify(r rune) Class {
	switch {
	case r >= 0x3040 && r <= 0x309F:
		return Hiragana
	case r >= 0x30A0 && r <= 0x30FF:
		return Katakana
	default:
		return Neither
	}
}

// Segmenter accumulates characters of one class and emits the run when the
// stream leaves that class for a Neither character.
//
// A direct switch between hiragana and katakana starts a fresh run and drops
// the previous one without emitting it. Callers depend on this, so keep it.
type Segmenter struct {
	state Class
	buf   strings.Builder
}

// New returns a Segmenter in the Neither state with an empty buffer.
func New() *Segmenter {
	return &Segmenter{}
}

// Feed consumes one character. It returns the completed word and true when r
// terminates a non-empty run.
func (s *Segmenter) Feed(r rune) (string, bool) {
	class := Classify(r)
	if class == s.state {
		if class != Neither {
			s.buf.WriteRune(r)
		}
		return "", false
	}

	if class == Neither {
		s.state = Neither
		if s.buf.Len() == 0 {
			return "", false
		}
		word := s.buf.String()
		s.buf.Reset()
		return word, true
	}

	s.state = class
	s.buf.Reset()
	s.buf.WriteRune(r)
	return "", false
}

// Finish flushes a trailing run at end of stream, as if a Neither character
// had been fed.
func (s *Segmenter) Finish() (string, bool) {
	return s.Feed(' ')
}

// Pending returns the characters accumulated for the current run.
func (s *Segmenter) Pending() string {
	return s.buf.String()
}

// State returns the class of the current run.
func (s *Segmenter) State() Class {
	return s.state
}

// Scan feeds every rune from r and calls emit for each completed word.
// It does not flush the trailing run so that several sources can be scanned
// as one continuous stream; call Finish when the last source is done.
func (s *Segmenter) Scan(r io.RuneReader, emit func(word string)) error {
	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if word, ok := s.Feed(ch); ok {
			emit(word)
		}
	}
}

// Words segments text with a fresh Segmenter, including the trailing run.
func Words(text string) []string {
	var out []string
	s := New()
	_ = s.Scan(strings.NewReader(text), func(w string) {
		out = append(out, w)
	})
	if w, ok := s.Finish(); ok {
		out = append(out, w)
	}
	return out
}
