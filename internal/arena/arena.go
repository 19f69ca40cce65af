// Package arena plays complete games between random seats. It is used to
// sanity-check the rules at scale and to gather balance statistics.
package arena

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

// DefaultMaxTurns caps a game that never reaches the negotiation limit.
const DefaultMaxTurns = 2000

// ErrStalled means the seat to play has no legal action left.
var ErrStalled = errors.New("no legal action available")

// Config configures a single arena game.
type Config struct {
	Players  int
	Seed     int64 // 0 = random
	MaxTurns int   // 0 = DefaultMaxTurns
}

// Result describes the outcome of an arena game.
type Result struct {
	Seed         int64                       `json:"seed"`
	Players      int                         `json:"players"`
	Winner       tergiversators.Winner       `json:"winner"`
	Finished     bool                        `json:"finished"` // false when the turn cap or a stall ended it
	Stalled      bool                        `json:"stalled,omitempty"`
	Turns        int                         `json:"turns"`
	Negotiations int                         `json:"negotiations"`
	Tally        tergiversators.PieceCounter `json:"tally"`
}

// RunGame plays one game with every seat choosing uniformly among its legal
// actions. Games cut short by the turn cap or a stall are scored as they
// stand.
func RunGame(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	b, err := tergiversators.Build(cfg.Players, rand.New(rand.NewSource(cfg.Seed^0x5eed)))
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}

	result := &Result{Seed: cfg.Seed, Players: cfg.Players}
	for result.Turns < cfg.MaxTurns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a, err := Pick(rng, b)
		if errors.Is(err, ErrStalled) {
			result.Stalled = true
			break
		}
		next, w, err := tergiversators.TakeTurn(b, a)
		if err != nil {
			// Legal actions are never rejected; anything else is a rules bug.
			return nil, fmt.Errorf("turn %d: %s: %w", result.Turns, a.Describe(), err)
		}
		result.Turns++
		if a.Type == tergiversators.ActionEndNegotiation {
			result.Negotiations++
		}
		b = next

		if w != nil {
			result.Winner = *w
			result.Finished = true
			result.Tally = b.ZoneTally()
			log.Debug().Int64("seed", cfg.Seed).Str("winner", w.String()).Int("turns", result.Turns).Msg("Arena game finished")
			return result, nil
		}
	}

	result.Winner = b.Score()
	result.Tally = b.ZoneTally()
	log.Debug().Int64("seed", cfg.Seed).Bool("stalled", result.Stalled).Int("turns", result.Turns).Msg("Arena game cut short")
	return result, nil
}

// Pick chooses uniformly among the legal actions for the seat to play.
func Pick(rng *rand.Rand, b tergiversators.Board) (tergiversators.Action, error) {
	actions := LegalActions(b)
	if len(actions) == 0 {
		return tergiversators.Action{}, ErrStalled
	}
	return actions[rng.Intn(len(actions))], nil
}

// LegalActions lists actions the seat to play may take. Battles are listed
// with a single piece removed; larger removals are legal but omitted.
func LegalActions(b tergiversators.Board) []tergiversators.Action {
	hand := b.CurrentHand()
	var out []tergiversators.Action

	if b.Negotiating() {
		for _, c := range tergiversators.AllCrews() {
			if hand.Get(c) > 0 {
				out = append(out, tergiversators.EndNegotiation(c))
			}
		}
		return out
	}

	if b.Bag().Total() > 0 {
		out = append(out, tergiversators.StartNegotiation())
	}
	for _, c := range tergiversators.AllCrews() {
		if hand.Get(c) == 0 {
			continue
		}
		for _, z := range tergiversators.AllZones() {
			out = append(out, tergiversators.Recruit(c, z))

			here := b.Zone(z)
			n := here.Get(c)
			if n == 0 {
				continue
			}
			for _, to := range tergiversators.ZonesAdjacentTo(z) {
				for amount := uint8(1); amount <= n; amount++ {
					out = append(out, tergiversators.March(c, z, to, amount))
				}
			}
			for _, victim := range tergiversators.AllCrews() {
				if victim == c || here.Get(victim) == 0 {
					continue
				}
				var r tergiversators.PieceCounter
				r.Add(victim, 1)
				out = append(out, tergiversators.Battle(c, z, r.Rogues, r.Bullies, r.Goons))
			}
		}
	}
	return out
}
