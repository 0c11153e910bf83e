package vocab

import (
	"math/rand/v2"
	"time"
)

// RecomputeDue flags every entry whose next review time has passed and
// returns how many entries are due afterwards.
func (s *Store) RecomputeDue(now time.Time) int {
	due := 0
	for i := range s.entries {
		s.entries[i].Review.RecomputeDue(now)
		if s.entries[i].Review.Due {
			due++
		}
	}
	return due
}

// Due returns the entries currently queued for review, in store order.
func (s *Store) Due() []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Review.Due {
			out = append(out, e)
		}
	}
	return out
}

// PickDue returns a random due entry. It fails with ErrEmptyStore when the
// store is empty or nothing is due.
func (s *Store) PickDue(rng *rand.Rand) (Entry, error) {
	due := s.Due()
	if len(due) == 0 {
		return Entry{}, ErrEmptyStore
	}
	return due[rng.IntN(len(due))], nil
}

// Sample returns up to n distinct entries chosen at random. When n exceeds
// the store size every entry is returned in random order.
func (s *Store) Sample(n int, rng *rand.Rand) ([]Entry, error) {
	if len(s.entries) == 0 {
		return nil, ErrEmptyStore
	}
	if n <= 0 {
		return nil, nil
	}
	n = min(n, len(s.entries))
	out := make([]Entry, 0, n)
	for _, i := range rng.Perm(len(s.entries))[:n] {
		out = append(out, s.entries[i])
	}
	return out, nil
}
