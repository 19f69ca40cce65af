package tergiversators

import "math/rand"

// Bag is the pool of undrawn pieces.
type Bag struct {
	pieces PieceCounter
}

// BagFromPieces tallies a flat list of pieces into a bag.
func BagFromPieces(pieces []Crew) Bag {
	var b Bag
	for _, c := range pieces {
		b.pieces.Add(c, 1)
	}
	return b
}

// Counts returns the bag contents.
func (b Bag) Counts() PieceCounter {
	return b.pieces
}

// Total returns the number of pieces left in the bag.
func (b Bag) Total() int {
	return b.pieces.Total()
}

// Roller picks a number in [0, n). *rand.Rand satisfies it.
type Roller interface {
	Intn(n int) int
}

// Draw removes one piece chosen uniformly from the remaining pieces, so each
// crew is drawn with probability proportional to its count. Categories are
// consumed in the order rogues, goons, bullies. rng may be nil to use the
// global source.
func (b *Bag) Draw(rng Roller) (Crew, error) {
	total := b.Total()
	if total == 0 {
		return NoCrew, ErrInsufficientPieces
	}
	var roll int
	if rng != nil {
		roll = rng.Intn(total)
	} else {
		roll = rand.Intn(total)
	}
	for _, c := range [...]Crew{Rogues, Goons, Bullies} {
		n := int(b.pieces.Get(c))
		if roll < n {
			_ = b.pieces.Subtract(c, 1)
			return c, nil
		}
		roll -= n
	}
	// unreachable: roll < total
	return NoCrew, ErrInsufficientPieces
}

// Return puts a piece back in the bag.
func (b *Bag) Return(c Crew) {
	b.pieces.Add(c, 1)
}

// returnMany puts n pieces of a crew back in the bag.
func (b *Bag) returnMany(c Crew, n uint8) {
	b.pieces.Add(c, n)
}
