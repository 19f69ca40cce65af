package tergiversators

import (
	"math/rand"
	"testing"
)

// FuzzTakeTurn plays random games and checks the board invariants after
// every action.
func FuzzTakeTurn(f *testing.F) {
	f.Add(int64(42), uint8(2))
	f.Add(int64(123456), uint8(5))
	f.Add(int64(0), uint8(3))

	f.Fuzz(func(t *testing.T, seed int64, players uint8) {
		rng := rand.New(rand.NewSource(seed))
		n := MinPlayers + int(players)%(MaxPlayers-MinPlayers+1)
		b, err := Build(n, rng)
		if err != nil {
			t.Fatalf("Build(%d): %v", n, err)
		}

		for turn := 0; turn < 500; turn++ {
			a := randomAction(rng, b)
			next, w, err := TakeTurn(b, a)

			if next.PieceCount() != TotalPieces {
				t.Fatalf("turn %d (%s): piece count %d", turn, a.Describe(), next.PieceCount())
			}
			for _, p := range AllPlayers()[n:] {
				if next.Hand(p).Total() != 0 {
					t.Fatalf("turn %d: inactive seat %s holds pieces", turn, p)
				}
			}
			if next.NextPlayer().Seat() >= n {
				t.Fatalf("turn %d: inactive seat %s to play", turn, next.NextPlayer())
			}
			if err != nil {
				rolled := next
				rolled.nextPlayer = b.nextPlayer
				if rolled != b {
					t.Fatalf("turn %d (%s): rejected action changed the board", turn, a.Describe())
				}
			}
			if w != nil {
				if !w.Draw && w.Player.Seat() < 0 {
					t.Fatalf("winner %+v is not a seat", w)
				}
				return
			}
			b = next
		}
	})
}

// randomAction picks an action that is legal more often than not.
func randomAction(rng *rand.Rand, b Board) Action {
	crew := AllCrews()[rng.Intn(3)]
	if hand := b.CurrentHand(); hand.Total() > 0 && rng.Intn(4) > 0 {
		for hand.Get(crew) == 0 {
			crew = AllCrews()[rng.Intn(3)]
		}
	}
	zones := AllZones()
	zone := zones[rng.Intn(len(zones))]

	if b.Negotiating() {
		return EndNegotiation(crew)
	}
	switch rng.Intn(5) {
	case 0:
		return Recruit(crew, zone)
	case 1:
		to := zones[rng.Intn(len(zones))]
		if adj := ZonesAdjacentTo(zone); len(adj) > 0 && rng.Intn(4) > 0 {
			to = adj[rng.Intn(len(adj))]
		}
		return March(crew, zone, to, uint8(rng.Intn(int(b.Zone(zone).Get(crew))+2)))
	case 2:
		var r [3]uint8
		for i := range r {
			r[i] = uint8(rng.Intn(3))
		}
		return Battle(crew, zone, r[0], r[1], r[2])
	case 3:
		return StartNegotiation()
	default:
		return Recruit(crew, zone)
	}
}
