// Package review holds the spaced-repetition state of a vocabulary entry.
//
// An entry climbs a fixed ladder of review intervals. Three consecutive
// correct recalls graduate it: the next review is pushed out by the current
// rung's duration and the entry moves one rung up.
package review

import (
	"fmt"
	"time"
)

// Rung is a position on the interval ladder.
type Rung int

const (
	RungThreeHours Rung = iota
	RungOneDay
	RungThreeDays
	RungOneWeek
	RungTwoWeeks
	RungFourWeeks
	RungTwelveWeeks
	RungTwentyFourWeeks
	RungFiftyTwoWeeks
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Rungs lists the ladder in ascending order.
var Rungs = []Rung{
	RungThreeHours,
	RungOneDay,
	RungThreeDays,
	RungOneWeek,
	RungTwoWeeks,
	RungFourWeeks,
	RungTwelveWeeks,
	RungTwentyFourWeeks,
	RungFiftyTwoWeeks,
}

// Duration returns the review interval of the rung.
func (r Rung) Duration() time.Duration {
	switch r {
	case RungThreeHours:
		return 3 * time.Hour
	case RungOneDay:
		return day
	case RungThreeDays:
		return 3 * day
	case RungOneWeek:
		return week
	case RungTwoWeeks:
		return 2 * week
	case RungFourWeeks:
		return 4 * week
	case RungTwelveWeeks:
		return 12 * week
	case RungTwentyFourWeeks:
		return 24 * week
	default:
		return 52 * week
	}
}

// Next returns the following rung. The last rung is terminal.
func (r Rung) Next() Rung {
	if r >= RungFiftyTwoWeeks {
		return RungFiftyTwoWeeks
	}
	return r + 1
}

func (r Rung) IsValid() bool {
	return r >= RungThreeHours && r <= RungFiftyTwoWeeks
}

func (r Rung) String() string {
	switch r {
	case RungThreeHours:
		return "three_hours"
	case RungOneDay:
		return "one_day"
	case RungThreeDays:
		return "three_days"
	case RungOneWeek:
		return "one_week"
	case RungTwoWeeks:
		return "two_weeks"
	case RungFourWeeks:
		return "four_weeks"
	case RungTwelveWeeks:
		return "twelve_weeks"
	case RungTwentyFourWeeks:
		return "twenty_four_weeks"
	case RungFiftyTwoWeeks:
		return "fifty_two_weeks"
	}
	return fmt.Sprintf("Rung(%d)", int(r))
}

// ParseRung converts a stored tag back into a Rung.
func ParseRung(s string) (Rung, error) {
	for _, r := range Rungs {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown interval rung %q", s)
}

// Streak counts consecutive correct recalls and saturates at ThreePlus.
type Streak int

const (
	StreakZero Streak = iota
	StreakOne
	StreakTwo
	StreakThreePlus
)

// Inc advances the streak by one step.
func (s Streak) Inc() Streak {
	switch s {
	case StreakZero:
		return StreakOne
	case StreakOne:
		return StreakTwo
	default:
		return StreakThreePlus
	}
}

func (s Streak) IsValid() bool {
	return s >= StreakZero && s <= StreakThreePlus
}

func (s Streak) String() string {
	switch s {
	case StreakZero:
		return "zero"
	case StreakOne:
		return "one"
	case StreakTwo:
		return "two"
	case StreakThreePlus:
		return "three_plus"
	}
	return fmt.Sprintf("Streak(%d)", int(s))
}

// ParseStreak converts a stored tag back into a Streak.
func ParseStreak(s string) (Streak, error) {
	switch s {
	case "zero":
		return StreakZero, nil
	case "one":
		return StreakOne, nil
	case "two":
		return StreakTwo, nil
	case "three_plus":
		return StreakThreePlus, nil
	}
	return 0, fmt.Errorf("unknown consecutive-correct count %q", s)
}

// State is the review progress of one entry.
type State struct {
	NextReview time.Time
	Rung       Rung
	Streak     Streak
	Due        bool
}

// New returns the state of a freshly created entry: first rung, no streak,
// due immediately.
func New(now time.Time) State {
	return State{
		NextReview: now,
		Rung:       RungThreeHours,
		Streak:     StreakZero,
		Due:        true,
	}
}

// RecordOutcome applies the result of one recall attempt and reports whether
// the entry graduated.
//
// A miss changes nothing. A correct answer advances the streak; the answer
// that brings it to ThreePlus schedules the next review one rung-duration
// from now, climbs a rung and clears Due. Once at ThreePlus, a correct answer
// only graduates again when the entry has been re-queued as due.
func (s *State) RecordOutcome(correct bool, now time.Time) bool {
	if !correct {
		return false
	}
	if s.Streak == StreakThreePlus {
		if !s.Due {
			return false
		}
		s.graduate(now)
		return true
	}
	s.Streak = s.Streak.Inc()
	if s.Streak != StreakThreePlus {
		return false
	}
	s.graduate(now)
	return true
}

func (s *State) graduate(now time.Time) {
	s.NextReview = now.Add(s.Rung.Duration())
	s.Rung = s.Rung.Next()
	s.Due = false
}

// RecomputeDue queues the entry once its next review time has arrived.
// It reports whether Due flipped from false to true.
func (s *State) RecomputeDue(now time.Time) bool {
	if s.Due {
		return false
	}
	if !now.Before(s.NextReview) {
		s.Due = true
		return true
	}
	return false
}
