// Package vocab is the deduplicated, alphabetically ordered vocabulary store.
package vocab

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/japaniel/kanastudy/pkg/review"
)

// Entry is one vocabulary word with its metadata and review progress.
type Entry struct {
	Word       string
	Type       WordType
	Definition string
	Review     review.State
}

// NewEntry returns an unclassified entry with a fresh review state.
func NewEntry(word string, now time.Time) Entry {
	return Entry{
		Word:   word,
		Review: review.New(now),
	}
}

func compareEntries(a, b Entry) int {
	return strings.Compare(a.Word, b.Word)
}

// Store holds entries unique by word and sorted by word.
type Store struct {
	entries []Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in store order.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Words returns the word keys in store order.
func (s *Store) Words() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Word
	}
	return out
}

func (s *Store) find(word string) (int, bool) {
	return slices.BinarySearchFunc(s.entries, word, func(e Entry, w string) int {
		return strings.Compare(e.Word, w)
	})
}

// Get returns the entry for word.
func (s *Store) Get(word string) (Entry, error) {
	i, ok := s.find(word)
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	return s.entries[i], nil
}

// Contains reports whether word is a key in the store.
func (s *Store) Contains(word string) bool {
	_, ok := s.find(word)
	return ok
}

// Merge inserts a fresh entry for every word not already present and
// re-sorts. Existing entries keep their metadata and review progress.
// Duplicates within words are dropped, first occurrence wins.
// It returns the number of entries added.
func (s *Store) Merge(words []string, now time.Time) int {
	seen := make(map[string]struct{}, len(words))
	added := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if s.Contains(w) {
			continue
		}
		s.entries = append(s.entries, NewEntry(w, now))
		added++
	}
	if added > 0 {
		slices.SortStableFunc(s.entries, compareEntries)
	}
	return added
}

// Add inserts a single new word. It fails with ErrAlreadyExists when the
// word is present.
func (s *Store) Add(word string, now time.Time) error {
	if word == "" {
		return fmt.Errorf("add: empty word")
	}
	i, ok := s.find(word)
	if ok {
		return fmt.Errorf("%q: %w", word, ErrAlreadyExists)
	}
	s.entries = slices.Insert(s.entries, i, NewEntry(word, now))
	return nil
}

// Remove deletes the entry for word.
func (s *Store) Remove(word string) error {
	i, ok := s.find(word)
	if !ok {
		return fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// SetMetadata replaces the type and definition of word. An invalid type is
// stored as WordTypeNone.
func (s *Store) SetMetadata(word string, typ WordType, definition string) error {
	i, ok := s.find(word)
	if !ok {
		return fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	if !typ.IsValid() {
		typ = WordTypeNone
	}
	s.entries[i].Type = typ
	s.entries[i].Definition = strings.TrimSpace(definition)
	return nil
}

// RecordOutcome applies a recall result to word and reports whether the
// entry graduated to the next rung.
func (s *Store) RecordOutcome(word string, correct bool, now time.Time) (bool, error) {
	i, ok := s.find(word)
	if !ok {
		return false, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	return s.entries[i].Review.RecordOutcome(correct, now), nil
}
