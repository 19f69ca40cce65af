package tergiversators

import "fmt"

// ActionType is the kind of action a player takes on their turn.
type ActionType int

const (
	ActionRecruit          ActionType = iota // Play a crew from hand onto a zone
	ActionMarch                              // Move pieces between adjacent zones
	ActionBattle                             // Remove opposing pieces from a zone
	ActionStartNegotiation                   // Draw a piece from the bag
	ActionEndNegotiation                     // Return a piece from hand to the bag
)

func (a ActionType) String() string {
	switch a {
	case ActionRecruit:
		return "recruit"
	case ActionMarch:
		return "march"
	case ActionBattle:
		return "battle"
	case ActionStartNegotiation:
		return "start_negotiation"
	case ActionEndNegotiation:
		return "end_negotiation"
	default:
		return "unknown"
	}
}

// ParseActionType maps a wire name back to an ActionType.
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "recruit":
		return ActionRecruit, nil
	case "march":
		return ActionMarch, nil
	case "battle":
		return ActionBattle, nil
	case "start_negotiation", "negotiate":
		return ActionStartNegotiation, nil
	case "end_negotiation":
		return ActionEndNegotiation, nil
	}
	return 0, fmt.Errorf("unknown action type %q", s)
}

func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(b []byte) error {
	v, err := ParseActionType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Action is a single move submitted for whoever's turn it is. The acting
// player is never part of the action.
type Action struct {
	Type ActionType `json:"type"`
	Crew Crew       `json:"crew,omitempty"`

	// Recruit target or battle location
	Zone Zone `json:"zone,omitempty"`

	// March route and size
	From   Zone  `json:"from,omitempty"`
	To     Zone  `json:"to,omitempty"`
	Amount uint8 `json:"amount,omitempty"`

	// Pieces removed by a battle
	Rogues  uint8 `json:"rogues,omitempty"`
	Bullies uint8 `json:"bullies,omitempty"`
	Goons   uint8 `json:"goons,omitempty"`
}

// Recruit plays one crew from hand onto a zone.
func Recruit(c Crew, z Zone) Action {
	return Action{Type: ActionRecruit, Crew: c, Zone: z}
}

// March moves amount pieces of a crew from one zone to an adjacent one.
func March(c Crew, from, to Zone, amount uint8) Action {
	return Action{Type: ActionMarch, Crew: c, From: from, To: to, Amount: amount}
}

// Battle attacks a zone with a crew, removing the given opposing pieces.
func Battle(c Crew, z Zone, rogues, bullies, goons uint8) Action {
	return Action{Type: ActionBattle, Crew: c, Zone: z, Rogues: rogues, Bullies: bullies, Goons: goons}
}

// StartNegotiation draws a piece from the bag into the acting hand.
func StartNegotiation() Action {
	return Action{Type: ActionStartNegotiation}
}

// EndNegotiation returns a crew from the acting hand to the bag.
func EndNegotiation(c Crew) Action {
	return Action{Type: ActionEndNegotiation, Crew: c}
}

// removals returns the battle removal amounts as a counter.
func (a Action) removals() PieceCounter {
	return PieceCounter{Rogues: a.Rogues, Bullies: a.Bullies, Goons: a.Goons}
}

// Describe returns a human-readable description of the action.
func (a Action) Describe() string {
	switch a.Type {
	case ActionRecruit:
		return fmt.Sprintf("Recruit %s -> %s", a.Crew, a.Zone)
	case ActionMarch:
		return fmt.Sprintf("March %d %s %s -> %s", a.Amount, a.Crew, a.From, a.To)
	case ActionBattle:
		return fmt.Sprintf("Battle %s @ %s (R%d B%d G%d)", a.Crew, a.Zone, a.Rogues, a.Bullies, a.Goons)
	case ActionStartNegotiation:
		return "Negotiate"
	case ActionEndNegotiation:
		return fmt.Sprintf("End negotiation returning %s", a.Crew)
	default:
		return "???"
	}
}
