package tergiversators

import (
	"math/rand"
	randv2 "math/rand/v2"
)

const (
	MinPlayers = 2
	MaxPlayers = 5

	// TotalPieces is the number of physical pieces in a game: the shuffled
	// pool plus the two pieces on each home base.
	TotalPieces = poolSize + 6

	poolSize      = 57
	piecesPerZone = 2
	handSize      = 8
)

// resetStreakOnAction controls whether a recruit, march or battle clears the
// run of consecutive negotiations. The run is currently never reset.
const resetStreakOnAction = false

// defaultPool returns the 57 pieces that are shuffled at setup.
func defaultPool() []Crew {
	pool := make([]Crew, 0, poolSize)
	for _, c := range []Crew{Bullies, Goons, Rogues} {
		for i := 0; i < poolSize/3; i++ {
			pool = append(pool, c)
		}
	}
	return pool
}

// Board is a complete snapshot of a game. It is a value: copying a Board
// copies all of its state, and TakeTurn never mutates the board it is given.
type Board struct {
	bag    Bag
	zones  [ZoneCount]PieceCounter
	hands  [PlayerCount]PieceCounter
	swords PieceCounter
	flags  PieceCounter

	numPlayers              uint8
	nextPlayer              Player
	negotiating             bool
	consecutiveNegotiations uint8

	// src is the board's own random state. It is part of the value, so
	// copies draw independently and identically.
	src source
}

// source is a PCG generator held by value.
type source struct {
	pcg randv2.PCG
}

// Intn implements Roller, advancing the state held in s.
func (s *source) Intn(n int) int {
	return randv2.New(&s.pcg).IntN(n)
}

func newSource(rng *rand.Rand) source {
	var hi, lo uint64
	if rng != nil {
		hi, lo = rng.Uint64(), rng.Uint64()
	} else {
		hi, lo = rand.Uint64(), rand.Uint64()
	}
	return source{pcg: *randv2.NewPCG(hi, lo)}
}

// StartGame sets up a new game for the given number of players using the
// global random source.
func StartGame(numPlayers int) (Board, error) {
	return Build(numPlayers, nil)
}

// Build sets up a new game, shuffling and drawing with rng. A nil rng uses
// the global random source.
func Build(numPlayers int, rng *rand.Rand) (Board, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return Board{}, ErrBadPlayerCount
	}
	b := Board{
		numPlayers: uint8(numPlayers),
		nextPlayer: Alpha,
		src:        newSource(rng),
	}
	for _, c := range AllCrews() {
		b.zones[HomeBase(c).Index()] = HomeBaseCounter(c)
	}
	b.setup(rng)
	return b, nil
}

func (b *Board) setup(rng *rand.Rand) {
	pool := defaultPool()
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	next := 0
	for _, z := range NeutralZones() {
		for _, c := range pool[next : next+piecesPerZone] {
			b.zones[z.Index()].Add(c, 1)
		}
		next += piecesPerZone
	}
	for _, p := range b.ActivePlayers() {
		for _, c := range pool[next : next+handSize] {
			b.hands[p.Seat()].Add(c, 1)
		}
		next += handSize
	}
	b.bag = BagFromPieces(pool[next:])
}

// NumPlayers returns the number of active seats.
func (b Board) NumPlayers() int { return int(b.numPlayers) }

// NextPlayer returns the seat whose turn it is.
func (b Board) NextPlayer() Player { return b.nextPlayer }

// Negotiating returns true while a negotiation is open.
func (b Board) Negotiating() bool { return b.negotiating }

// ConsecutiveNegotiations returns the length of the current negotiation run.
func (b Board) ConsecutiveNegotiations() int { return int(b.consecutiveNegotiations) }

// Zone returns the pieces on a zone. Unknown zones are empty.
func (b Board) Zone(z Zone) PieceCounter {
	if i := z.Index(); i >= 0 {
		return b.zones[i]
	}
	return PieceCounter{}
}

// Hand returns a seat's hand. Inactive seats always hold nothing.
func (b Board) Hand(p Player) PieceCounter {
	if i := p.Seat(); i >= 0 {
		return b.hands[i]
	}
	return PieceCounter{}
}

// CurrentHand returns the hand of the seat whose turn it is.
func (b Board) CurrentHand() PieceCounter {
	return b.Hand(b.nextPlayer)
}

// Swords returns the battle tally per crew.
func (b Board) Swords() PieceCounter { return b.swords }

// Flags returns the march tally per crew.
func (b Board) Flags() PieceCounter { return b.flags }

// Bag returns the undrawn pieces.
func (b Board) Bag() PieceCounter { return b.bag.Counts() }

// Controller returns the crew currently controlling a zone, or NoCrew.
func (b Board) Controller(z Zone) Crew {
	return b.Zone(z).Controller(b.swords, b.flags)
}

// ActivePlayers returns the seats taking part, in turn order.
func (b Board) ActivePlayers() []Player {
	return AllPlayers()[:b.numPlayers]
}

// PieceCount returns the number of physical pieces across the bag, zones and
// hands. It equals TotalPieces for every reachable board.
func (b Board) PieceCount() int {
	n := b.bag.Total()
	for _, z := range b.zones {
		n += z.Total()
	}
	for _, h := range b.hands {
		n += h.Total()
	}
	return n
}

func (b *Board) advanceTurn() {
	seat := b.nextPlayer.Seat()
	b.nextPlayer = AllPlayers()[(seat+1)%int(b.numPlayers)]
}

func (b *Board) zone(z Zone) (*PieceCounter, error) {
	i := z.Index()
	if i < 0 {
		return nil, ErrUnknownZone
	}
	return &b.zones[i], nil
}

func (b *Board) hand(p Player) *PieceCounter {
	return &b.hands[p.Seat()]
}

// TakeTurn applies an action for whoever's turn it is. See Board.ProcessAction.
func TakeTurn(b Board, a Action) (Board, *Winner, error) {
	return b.ProcessAction(a)
}

// ProcessAction applies an action for the seat whose turn it is and returns
// the resulting board. Except for StartNegotiation, the turn passes to the
// next seat even if the action is rejected; in that case the returned board
// is otherwise identical to b and the error is an *Error. A non-nil Winner
// means the game has ended.
func (b Board) ProcessAction(a Action) (Board, *Winner, error) {
	if b.negotiating && a.Type != ActionEndNegotiation {
		return b, nil, &Error{Action: a, Reason: ErrNegotiationInProgress}
	}

	player := b.nextPlayer
	if a.Type != ActionStartNegotiation {
		b.advanceTurn()
	}

	next := b
	if err := next.apply(player, a); err != nil {
		return b, nil, &Error{Action: a, Reason: err}
	}
	if resetStreakOnAction && a.Type != ActionStartNegotiation && a.Type != ActionEndNegotiation {
		next.consecutiveNegotiations = 0
	}

	if int(next.consecutiveNegotiations) >= int(next.numPlayers) {
		w := next.Score()
		return next, &w, nil
	}
	return next, nil, nil
}

func (b *Board) apply(player Player, a Action) error {
	switch a.Type {
	case ActionRecruit:
		return b.recruit(player, a.Crew, a.Zone)
	case ActionMarch:
		return b.march(player, a.Crew, a.From, a.To, a.Amount)
	case ActionBattle:
		return b.battle(player, a.Crew, a.Zone, a.removals())
	case ActionStartNegotiation:
		return b.startNegotiation(player)
	case ActionEndNegotiation:
		return b.endNegotiation(player, a.Crew)
	default:
		return ErrUnknownAction
	}
}

func (b *Board) recruit(player Player, c Crew, z Zone) error {
	zone, err := b.zone(z)
	if err != nil {
		return err
	}
	if err := b.hand(player).Subtract(c, 1); err != nil {
		return err
	}
	zone.Add(c, 1)
	return nil
}

func (b *Board) march(player Player, c Crew, from, to Zone, amount uint8) error {
	if !Adjacent(from, to) {
		return ErrCannotMarchFromTo
	}
	if err := b.spend(player, c); err != nil {
		return err
	}
	src, _ := b.zone(from)
	dst, _ := b.zone(to)
	if err := src.Subtract(c, amount); err != nil {
		return err
	}
	b.flags.Add(c, 1)
	dst.Add(c, amount)
	return nil
}

func (b *Board) battle(player Player, attacker Crew, z Zone, removals PieceCounter) error {
	if !attacker.Valid() {
		return ErrUnknownCrew
	}
	if removals.Get(attacker) != 0 {
		return ErrCannotRemoveFromAttackingCrew
	}
	total := removals.Total()
	if total == 0 {
		return ErrMustRemoveWhenAttacking
	}
	zone, err := b.zone(z)
	if err != nil {
		return err
	}
	if err := b.spend(player, attacker); err != nil {
		return err
	}
	if total > int(zone.Get(attacker)) {
		return ErrInsufficientPieces
	}
	b.swords.Add(attacker, 1)
	for _, c := range AllCrews() {
		n := removals.Get(c)
		if err := zone.Subtract(c, n); err != nil {
			return err
		}
		b.bag.returnMany(c, n)
	}
	return nil
}

// spend pays the one-piece cost of a march or battle. The piece goes back to
// the bag so the number of pieces in play never changes.
func (b *Board) spend(player Player, c Crew) error {
	if err := b.hand(player).Subtract(c, 1); err != nil {
		return err
	}
	b.bag.Return(c)
	return nil
}

func (b *Board) startNegotiation(player Player) error {
	c, err := b.bag.Draw(&b.src)
	if err != nil {
		return err
	}
	b.hand(player).Add(c, 1)
	b.negotiating = true
	return nil
}

func (b *Board) endNegotiation(player Player, c Crew) error {
	if err := b.hand(player).Subtract(c, 1); err != nil {
		return err
	}
	b.bag.Return(c)
	b.negotiating = false
	b.consecutiveNegotiations++
	return nil
}
