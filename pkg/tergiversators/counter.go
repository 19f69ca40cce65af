package tergiversators

import (
	"cmp"
	"sort"
)

// PieceCounter tallies pieces per crew. It backs board zones, player hands,
// the bag and the swords/flags tallies.
type PieceCounter struct {
	Rogues  uint8 `json:"rogues"`
	Bullies uint8 `json:"bullies"`
	Goons   uint8 `json:"goons"`
}

// HomeBaseCounter returns a counter holding two pieces of the given crew.
func HomeBaseCounter(c Crew) PieceCounter {
	var pc PieceCounter
	pc.Add(c, 2)
	return pc
}

// Get returns the number of pieces of the given crew.
func (pc PieceCounter) Get(c Crew) uint8 {
	switch c {
	case Rogues:
		return pc.Rogues
	case Bullies:
		return pc.Bullies
	case Goons:
		return pc.Goons
	}
	return 0
}

func (pc *PieceCounter) slot(c Crew) *uint8 {
	switch c {
	case Rogues:
		return &pc.Rogues
	case Bullies:
		return &pc.Bullies
	case Goons:
		return &pc.Goons
	}
	return nil
}

// Total returns the number of pieces across all crews.
func (pc PieceCounter) Total() int {
	return int(pc.Rogues) + int(pc.Bullies) + int(pc.Goons)
}

// Add increments the given crew. Unknown crews are ignored.
func (pc *PieceCounter) Add(c Crew, amount uint8) {
	if s := pc.slot(c); s != nil {
		*s += amount
	}
}

// Subtract removes pieces of the given crew, leaving the counter untouched
// when there are not enough.
func (pc *PieceCounter) Subtract(c Crew, amount uint8) error {
	if err := pc.Check(c, amount); err != nil {
		return err
	}
	if s := pc.slot(c); s != nil {
		*s -= amount
	}
	return nil
}

// Check reports ErrInsufficientPieces if fewer than amount pieces of c are present.
func (pc PieceCounter) Check(c Crew, amount uint8) error {
	if !c.Valid() {
		return ErrUnknownCrew
	}
	if pc.Get(c) < amount {
		return ErrInsufficientPieces
	}
	return nil
}

// sortedCrews returns the crews ordered by count, highest first.
func (pc PieceCounter) sortedCrews() [3]Crew {
	crews := [3]Crew{Rogues, Bullies, Goons}
	sort.SliceStable(crews[:], func(i, j int) bool {
		return pc.Get(crews[i]) > pc.Get(crews[j])
	})
	return crews
}

// leader returns the crew with the highest count when it is not shared.
func (pc PieceCounter) leader() Crew {
	s := pc.sortedCrews()
	if pc.Get(s[0]) == pc.Get(s[1]) {
		return NoCrew
	}
	return s[0]
}

// Controller returns the crew that controls this counter's zone, or NoCrew.
//
// A strict majority wins outright. A two-way tie at the top is broken by the
// swords tally of the tied pair, then the flags tally. A three-way tie is
// broken by whichever crew leads swords, then whichever leads flags.
func (pc PieceCounter) Controller(swords, flags PieceCounter) Crew {
	if pc.Rogues == pc.Bullies && pc.Rogues == pc.Goons {
		if c := swords.leader(); c != NoCrew {
			return c
		}
		return flags.leader()
	}

	s := pc.sortedCrews()
	first, second := s[0], s[1]
	if pc.Get(first) != pc.Get(second) {
		return first
	}

	switch cmp.Compare(swords.Get(first), swords.Get(second)) {
	case 1:
		return first
	case -1:
		return second
	}
	switch cmp.Compare(flags.Get(first), flags.Get(second)) {
	case 1:
		return first
	case -1:
		return second
	}
	return NoCrew
}

// Loser returns the crew with the fewest pieces, or NoCrew when that is not
// decided by count alone.
func (pc PieceCounter) Loser() Crew {
	inverse := PieceCounter{
		Rogues:  255 - pc.Rogues,
		Bullies: 255 - pc.Bullies,
		Goons:   255 - pc.Goons,
	}
	return inverse.Controller(PieceCounter{}, PieceCounter{})
}

// WinningSort orders two counters by how many of the winning crew they hold,
// then by how few of the losing crew they hold. It returns +1 when a ranks
// above b, -1 when below, 0 when tied. A losing crew of NoCrew makes the
// second step neutral.
func WinningSort(a, b PieceCounter, winning, losing Crew) int {
	if c := cmp.Compare(a.Get(winning), b.Get(winning)); c != 0 {
		return c
	}
	if losing == NoCrew {
		return 0
	}
	return cmp.Compare(b.Get(losing), a.Get(losing))
}
