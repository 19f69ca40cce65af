package tergiversators

import (
	"errors"
	"fmt"
)

// Rejection reasons. Every rule failure surfaces as one of these, wrapped in
// an *Error that names the rejected action.
var (
	ErrBadPlayerCount                = errors.New("number of players must be between 2 and 5")
	ErrCannotMarchFromTo             = errors.New("cannot march between those zones")
	ErrCannotRemoveFromAttackingCrew = errors.New("cannot remove pieces of the attacking crew")
	ErrMustRemoveWhenAttacking       = errors.New("a battle must remove at least one piece")
	ErrNegotiationInProgress         = errors.New("a negotiation is in progress")
	ErrInsufficientPieces            = errors.New("not enough pieces")

	// Malformed input rather than an illegal move.
	ErrUnknownCrew   = errors.New("unknown crew")
	ErrUnknownZone   = errors.New("unknown zone")
	ErrUnknownAction = errors.New("unknown action")
)

// Error describes why an action was rejected.
type Error struct {
	Action Action
	Reason error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rejected %s: %v", e.Action.Describe(), e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Reason
}
