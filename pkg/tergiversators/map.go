package tergiversators

import "fmt"

// ZoneCount is the number of zones on the board.
const ZoneCount = 11

// Zone is a location on the board.
type Zone string

const (
	// Home bases
	Red   Zone = "red"
	Green Zone = "green"
	Blue  Zone = "blue"

	// Neutral zones
	Orange  Zone = "orange"
	Yellow  Zone = "yellow"
	Cyan    Zone = "cyan"
	Magenta Zone = "magenta"
	Purple  Zone = "purple"
	White   Zone = "white"
	Black   Zone = "black"
	Gray    Zone = "gray"
)

// AllZones returns every zone, home bases first.
func AllZones() []Zone {
	return []Zone{Red, Green, Blue, Orange, Yellow, Cyan, Magenta, Purple, White, Black, Gray}
}

// NeutralZones returns the eight zones that are filled from the shuffled pool at setup.
func NeutralZones() []Zone {
	return AllZones()[3:]
}

// Index returns the dense index (0..ZoneCount-1) for a zone, or -1 if unknown.
func (z Zone) Index() int {
	switch z {
	case Red:
		return 0
	case Green:
		return 1
	case Blue:
		return 2
	case Orange:
		return 3
	case Yellow:
		return 4
	case Cyan:
		return 5
	case Magenta:
		return 6
	case Purple:
		return 7
	case White:
		return 8
	case Black:
		return 9
	case Gray:
		return 10
	}
	return -1
}

// HomeCrew returns the crew whose home base this zone is, or NoCrew.
func (z Zone) HomeCrew() Crew {
	switch z {
	case Red:
		return Rogues
	case Green:
		return Goons
	case Blue:
		return Bullies
	}
	return NoCrew
}

// UnmarshalText accepts only known zone names.
func (z *Zone) UnmarshalText(b []byte) error {
	v := Zone(b)
	if v != "" && v.Index() < 0 {
		return fmt.Errorf("unknown zone %q", string(b))
	}
	*z = v
	return nil
}

// HomeBase returns the zone seeded with two pieces of the given crew.
func HomeBase(c Crew) Zone {
	switch c {
	case Rogues:
		return Red
	case Goons:
		return Green
	case Bullies:
		return Blue
	}
	return ""
}

// Adjacency is a single directed march route.
type Adjacency struct {
	From Zone
	To   Zone
}

// adjacencies lists every directed route a march may take. Membership is
// checked literally, without symmetric closure.
var adjacencies = [...]Adjacency{
	{Green, Cyan}, {Green, Yellow},
	{Red, Gray}, {Red, Orange},
	{Black, Gray}, {Black, Purple}, {Black, White},
	{Blue, Magenta}, {Blue, Purple}, {Blue, White},
	{Gray, Black}, {Gray, Purple}, {Gray, Red},
	{Magenta, Blue}, {Magenta, Cyan}, {Magenta, Purple},
	{Orange, Cyan}, {Orange, Red}, {Orange, Yellow},
	{White, Black}, {White, Blue}, {White, Purple},
	{Yellow, Cyan}, {Yellow, Green}, {Yellow, Orange},
	{Cyan, Green}, {Cyan, Magenta}, {Cyan, Orange}, {Cyan, Yellow},
	{Purple, Black}, {Purple, Blue}, {Purple, Gray}, {Purple, Magenta}, {Purple, White},
}

// Adjacencies returns a copy of the directed route table.
func Adjacencies() []Adjacency {
	out := make([]Adjacency, len(adjacencies))
	copy(out, adjacencies[:])
	return out
}

// Adjacent returns true if a march from src to dst is allowed.
func Adjacent(src, dst Zone) bool {
	for _, adj := range adjacencies {
		if adj.From == src && adj.To == dst {
			return true
		}
	}
	return false
}

// ZonesAdjacentTo returns every zone reachable by one march from z.
func ZonesAdjacentTo(z Zone) []Zone {
	var result []Zone
	for _, adj := range adjacencies {
		if adj.From == z {
			result = append(result, adj.To)
		}
	}
	return result
}
