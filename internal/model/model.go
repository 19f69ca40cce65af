package model

import (
	"errors"
	"time"

	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

// Game statuses.
const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Game represents a hosted game and the public view of its board.
type Game struct {
	ID         string                 `json:"id"`
	Status     string                 `json:"status"` // active, finished
	NumPlayers int                    `json:"num_players"`
	Turn       int                    `json:"turn"`
	Winner     *tergiversators.Winner `json:"winner,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
	Board      BoardView              `json:"board"`
}

// Seat is an active seat and the token that authorizes actions for it.
type Seat struct {
	Player  tergiversators.Player `json:"player"`
	Ordinal string                `json:"ordinal"`
	Token   string                `json:"token"`
}

// ZoneView is one zone's pieces and its current controller.
type ZoneView struct {
	Zone       tergiversators.Zone         `json:"zone"`
	Pieces     tergiversators.PieceCounter `json:"pieces"`
	Controller tergiversators.Crew         `json:"controller,omitempty"`
}

// HandSize is how many pieces a seat holds, without saying which crews.
type HandSize struct {
	Player tergiversators.Player `json:"player"`
	Pieces int                   `json:"pieces"`
}

// BoardView is the information every seat can see.
type BoardView struct {
	NextPlayer              tergiversators.Player       `json:"next_player"`
	Negotiating             bool                        `json:"negotiating"`
	ConsecutiveNegotiations int                         `json:"consecutive_negotiations"`
	Zones                   []ZoneView                  `json:"zones"`
	Swords                  tergiversators.PieceCounter `json:"swords"`
	Flags                   tergiversators.PieceCounter `json:"flags"`
	Tally                   tergiversators.PieceCounter `json:"tally"`
	Bag                     int                         `json:"bag"`
	Hands                   []HandSize                  `json:"hands"`
}

// NewBoardView builds the public view of a board.
func NewBoardView(b tergiversators.Board) BoardView {
	v := BoardView{
		NextPlayer:              b.NextPlayer(),
		Negotiating:             b.Negotiating(),
		ConsecutiveNegotiations: b.ConsecutiveNegotiations(),
		Swords:                  b.Swords(),
		Flags:                   b.Flags(),
		Tally:                   b.ZoneTally(),
		Bag:                     b.Bag().Total(),
	}
	for _, z := range tergiversators.AllZones() {
		v.Zones = append(v.Zones, ZoneView{Zone: z, Pieces: b.Zone(z), Controller: b.Controller(z)})
	}
	for _, p := range b.ActivePlayers() {
		v.Hands = append(v.Hands, HandSize{Player: p, Pieces: b.Hand(p).Total()})
	}
	return v
}

// SeatView is what a single seat sees: the public game plus its own hand.
type SeatView struct {
	Game   *Game                       `json:"game"`
	Player tergiversators.Player       `json:"player"`
	Hand   tergiversators.PieceCounter `json:"hand"`
}

// TurnResult is the outcome of one submitted action. A rejected action still
// passes the turn, so Game is always the latest state.
type TurnResult struct {
	SeatView
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

var reasonCodes = []struct {
	err  error
	code string
}{
	{tergiversators.ErrCannotMarchFromTo, "cannot_march_from_to"},
	{tergiversators.ErrCannotRemoveFromAttackingCrew, "cannot_remove_from_attacking_crew"},
	{tergiversators.ErrMustRemoveWhenAttacking, "must_remove_when_attacking"},
	{tergiversators.ErrNegotiationInProgress, "negotiation_in_progress"},
	{tergiversators.ErrInsufficientPieces, "insufficient_pieces"},
	{tergiversators.ErrUnknownCrew, "unknown_crew"},
	{tergiversators.ErrUnknownZone, "unknown_zone"},
	{tergiversators.ErrUnknownAction, "unknown_action"},
}

// ReasonCode returns a stable machine-readable code for a rule rejection.
func ReasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "rejected"
}
