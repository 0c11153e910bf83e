package vocab

import (
	"slices"
	"time"

	"github.com/japaniel/kanastudy/pkg/review"
)

// Record is the persisted shape of an entry. WordType and Definition are nil
// when absent.
type Record struct {
	Word               string    `json:"word"`
	WordType           *string   `json:"word_type"`
	Definition         *string   `json:"definition"`
	NextReview         time.Time `json:"next_review"`
	IntervalRung       string    `json:"interval_rung"`
	Due                bool      `json:"due"`
	ConsecutiveCorrect string    `json:"consecutive_correct"`
}

// Record converts the entry to its persisted shape.
func (e Entry) Record() Record {
	r := Record{
		Word:               e.Word,
		NextReview:         e.Review.NextReview,
		IntervalRung:       e.Review.Rung.String(),
		Due:                e.Review.Due,
		ConsecutiveCorrect: e.Review.Streak.String(),
	}
	if e.Type != WordTypeNone {
		t := string(e.Type)
		r.WordType = &t
	}
	if e.Definition != "" {
		d := e.Definition
		r.Definition = &d
	}
	return r
}

// Entry validates r and converts it. index is only used in error messages.
func (r Record) Entry(index int) (Entry, error) {
	fail := func(field, reason string) (Entry, error) {
		return Entry{}, &RecordError{Index: index, Word: r.Word, Field: field, Reason: reason}
	}
	if r.Word == "" {
		return fail("word", "must be non-empty")
	}
	e := Entry{Word: r.Word}
	if r.WordType != nil {
		t := WordType(*r.WordType)
		if !t.IsValid() {
			return fail("word_type", "unknown type "+*r.WordType)
		}
		e.Type = t
	}
	if r.Definition != nil {
		e.Definition = *r.Definition
	}
	if r.NextReview.IsZero() {
		return fail("next_review", "missing timestamp")
	}
	rung, err := review.ParseRung(r.IntervalRung)
	if err != nil {
		return fail("interval_rung", err.Error())
	}
	streak, err := review.ParseStreak(r.ConsecutiveCorrect)
	if err != nil {
		return fail("consecutive_correct", err.Error())
	}
	e.Review = review.State{
		NextReview: r.NextReview,
		Rung:       rung,
		Streak:     streak,
		Due:        r.Due,
	}
	return e, nil
}

// FromRecords builds a store from persisted records. Every record must be
// well formed and keys must be unique; nothing is coerced or deduplicated.
func FromRecords(records []Record) (*Store, error) {
	s := &Store{entries: make([]Entry, 0, len(records))}
	firstIndex := make(map[string]int, len(records))
	for i, r := range records {
		e, err := r.Entry(i)
		if err != nil {
			return nil, err
		}
		if prev, dup := firstIndex[e.Word]; dup {
			return nil, &DuplicateKeyError{Word: e.Word, First: prev, Second: i}
		}
		firstIndex[e.Word] = i
		s.entries = append(s.entries, e)
	}
	slices.SortStableFunc(s.entries, compareEntries)
	return s, nil
}

// Records returns the persisted shape of every entry in store order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Record()
	}
	return out
}
