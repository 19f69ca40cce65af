package tergiversators

import "fmt"

// Crew is one of the three competing factions.
type Crew string

const (
	Rogues  Crew = "rogues"
	Bullies Crew = "bullies"
	Goons   Crew = "goons"
	NoCrew  Crew = ""
)

// AllCrews returns the three crews in counter order.
func AllCrews() []Crew {
	return []Crew{Rogues, Bullies, Goons}
}

// Valid reports whether c names one of the three crews.
func (c Crew) Valid() bool {
	return c == Rogues || c == Bullies || c == Goons
}

// UnmarshalText accepts only known crew names (and the empty string).
func (c *Crew) UnmarshalText(b []byte) error {
	v := Crew(b)
	if v != NoCrew && !v.Valid() {
		return fmt.Errorf("unknown crew %q", string(b))
	}
	*c = v
	return nil
}

// Player is a seat at the table. Only the first NumPlayers seats take part.
type Player string

const (
	Alpha   Player = "alpha"
	Beta    Player = "beta"
	Gamma   Player = "gamma"
	Delta   Player = "delta"
	Epsilon Player = "epsilon"
)

// PlayerCount is the number of seats on the board, active or not.
const PlayerCount = 5

// AllPlayers returns every seat in turn order.
func AllPlayers() []Player {
	return []Player{Alpha, Beta, Gamma, Delta, Epsilon}
}

// Seat returns the zero-based seat index, or -1 for an unknown player.
func (p Player) Seat() int {
	switch p {
	case Alpha:
		return 0
	case Beta:
		return 1
	case Gamma:
		return 2
	case Delta:
		return 3
	case Epsilon:
		return 4
	}
	return -1
}

// Ordinal returns the human seat name ("First player" ...).
func (p Player) Ordinal() string {
	switch p {
	case Alpha:
		return "First player"
	case Beta:
		return "Second player"
	case Gamma:
		return "Third player"
	case Delta:
		return "Fourth player"
	case Epsilon:
		return "Fifth player"
	}
	return "Unknown player"
}

// UnmarshalText accepts only known seat names.
func (p *Player) UnmarshalText(b []byte) error {
	v := Player(b)
	if v.Seat() < 0 {
		return fmt.Errorf("unknown player %q", string(b))
	}
	*p = v
	return nil
}
