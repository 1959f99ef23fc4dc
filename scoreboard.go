package fontmatch

import (
	"fmt"
	"strings"
	"sync"
)

// WorstScore is the sentinel an unfilled scoreboard slot holds: the score
// of two fonts that do not overlap at all.
const WorstScore = 100.0

// Entry is one scoreboard slot: an aggregate difference percentage and the
// label of the candidate that produced it.
type Entry struct {
	Score float64
	Label string
}

// Scoreboard keeps the K best (lowest) scores seen so far, sorted
// ascending. It always holds exactly K entries; slots that no real
// candidate has claimed yet carry the sentinel (WorstScore, ""). Insert is
// serialized by a mutex so concurrent matchers can share one board.
type Scoreboard struct {
	mu      sync.Mutex
	entries []Entry
}

// NewScoreboard returns a board of k sentinel entries.
func NewScoreboard(k int) *Scoreboard {
	if k < 1 {
		k = 1
	}
	entries := make([]Entry, k)
	for i := range entries {
		entries[i] = Entry{Score: WorstScore}
	}
	return &Scoreboard{entries: entries}
}

// Insert offers a (score, label) pair to the board. The pair lands at the
// first slot whose score is >= the new score, shifting worse entries toward
// the tail and dropping the current worst; a score worse than every slot is
// discarded without mutating the board.
//
// An incoming score equal to an existing one is inserted before it,
// displacing the earlier-discovered candidate downward. That tie-break is
// arbitrary but deliberate, and pinned by tests.
func (s *Scoreboard) Insert(score float64, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := 0
	for i < len(s.entries) && s.entries[i].Score < score {
		i++
	}
	if i == len(s.entries) {
		return
	}
	copy(s.entries[i+1:], s.entries[i:len(s.entries)-1])
	s.entries[i] = Entry{Score: score, Label: label}
}

// Len returns the board's fixed capacity K.
func (s *Scoreboard) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a copy of the board in ascending score order, best match
// first.
func (s *Scoreboard) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Report formats the board for display, best match first.
func (s *Scoreboard) Report() string {
	var b strings.Builder
	for i, e := range s.Entries() {
		fmt.Fprintf(&b, "%d.  Difference: %.2f%%\n\t%s\n", i+1, e.Score, e.Label)
	}
	return b.String()
}
