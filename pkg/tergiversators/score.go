package tergiversators

import "sort"

// Winner is the outcome of a finished game: either a draw or a winning seat.
type Winner struct {
	Draw   bool   `json:"draw"`
	Player Player `json:"player,omitempty"`
}

func (w Winner) String() string {
	if w.Draw {
		return "Draw"
	}
	return w.Player.Ordinal()
}

// ZoneTally counts, per crew, the zones that crew controls.
func (b Board) ZoneTally() PieceCounter {
	var scores PieceCounter
	for _, z := range b.zones {
		if c := z.Controller(b.swords, b.flags); c != NoCrew {
			scores.Add(c, 1)
		}
	}
	return scores
}

// Score determines the winner of the board as it stands.
//
// The crew controlling the most zones is the winning crew (ties broken by
// swords then flags); if none can be separated the game is a draw. Seats are
// ranked by how many of the winning crew they hold, then by how few of the
// losing crew. Remaining ties go to the seat closest in turn order to the
// next player; inactive seats lose every tie.
func (b Board) Score() Winner {
	scores := b.ZoneTally()
	winning := scores.Controller(b.swords, b.flags)
	if winning == NoCrew {
		return Winner{Draw: true}
	}
	losing := scores.Loser()

	position := b.turnPositions()
	players := AllPlayers()
	sort.SliceStable(players, func(i, j int) bool {
		pi, pj := players[i], players[j]
		if c := WinningSort(b.Hand(pi), b.Hand(pj), winning, losing); c != 0 {
			return c > 0
		}
		return position[pi.Seat()] < position[pj.Seat()]
	})
	return Winner{Player: players[0]}
}

// turnPositions returns, per seat, how many turns away that seat is from
// the next player. Inactive seats come after every active seat.
func (b Board) turnPositions() [PlayerCount]int {
	var pos [PlayerCount]int
	n := int(b.numPlayers)
	start := b.nextPlayer.Seat()
	for seat := range pos {
		if seat < n {
			pos[seat] = (seat - start + n) % n
		} else {
			pos[seat] = seat
		}
	}
	return pos
}
