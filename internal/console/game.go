package console

import (
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

// Play runs a hot-seat game on b until someone wins or input runs out.
// After a negotiation opens, the player must name a crew to return before
// anything else happens.
func Play(b tergiversators.Board, p *Prompter, r *Renderer) (tergiversators.Winner, error) {
	for {
		if err := r.Board(b); err != nil {
			return tergiversators.Winner{}, err
		}
		a, err := p.Action()
		if err != nil {
			return tergiversators.Winner{}, err
		}

		next, w, rejected := tergiversators.TakeTurn(b, a)
		b = next
		if rejected != nil {
			if err := r.Rejected(rejected); err != nil {
				return tergiversators.Winner{}, err
			}
			continue
		}

		for b.Negotiating() {
			if err := r.Board(b); err != nil {
				return tergiversators.Winner{}, err
			}
			c, err := p.Crew("Return which crew?")
			if err != nil {
				return tergiversators.Winner{}, err
			}
			b, w, rejected = tergiversators.TakeTurn(b, tergiversators.EndNegotiation(c))
			if rejected != nil {
				if err := r.Rejected(rejected); err != nil {
					return tergiversators.Winner{}, err
				}
			}
		}

		if w != nil {
			return *w, r.Winner(*w)
		}
	}
}
