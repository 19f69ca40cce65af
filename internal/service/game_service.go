package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/tergiversators/internal/auth"
	"github.com/freeeve/tergiversators/internal/logger"
	"github.com/freeeve/tergiversators/internal/model"
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameFinished = errors.New("game is finished")
	ErrNotYourTurn  = errors.New("it is not your turn")
	ErrSeatMismatch = errors.New("seat token belongs to another game")
	ErrTooManyGames = errors.New("too many games in progress")
)

// TokenIssuer signs seat tokens. Implemented by auth.JWTManager.
type TokenIssuer interface {
	GenerateSeatToken(gameID string, player tergiversators.Player) (string, error)
}

// BoardBuilder sets up a new board for the given number of players.
type BoardBuilder func(numPlayers int) (tergiversators.Board, error)

// SeededBuilder returns a BoardBuilder whose games are reproducible from seed.
func SeededBuilder(seed int64) BoardBuilder {
	var mu sync.Mutex
	src := rand.New(rand.NewSource(seed))
	return func(n int) (tergiversators.Board, error) {
		mu.Lock()
		gameSeed := src.Int63()
		mu.Unlock()
		return tergiversators.Build(n, rand.New(rand.NewSource(gameSeed)))
	}
}

// gameEntry is one hosted game. mu serializes actions on its board.
type gameEntry struct {
	mu         sync.Mutex
	id         string
	board      tergiversators.Board
	turn       int
	winner     *tergiversators.Winner
	createdAt  time.Time
	finishedAt *time.Time
}

func (e *gameEntry) view() *model.Game {
	g := &model.Game{
		ID:         e.id,
		Status:     model.StatusActive,
		NumPlayers: e.board.NumPlayers(),
		Turn:       e.turn,
		Winner:     e.winner,
		CreatedAt:  e.createdAt,
		FinishedAt: e.finishedAt,
		Board:      model.NewBoardView(e.board),
	}
	if e.winner != nil {
		g.Status = model.StatusFinished
	}
	return g
}

func (e *gameEntry) seatView(p tergiversators.Player) model.SeatView {
	return model.SeatView{Game: e.view(), Player: p, Hand: e.board.Hand(p)}
}

// GameService hosts games in memory and applies actions to them.
type GameService struct {
	mu       sync.RWMutex
	games    map[string]*gameEntry
	tokens   TokenIssuer
	notifier Notifier
	build    BoardBuilder
	maxGames int
}

// NewGameService creates a GameService holding at most maxGames games.
func NewGameService(tokens TokenIssuer, notifier Notifier, maxGames int) *GameService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &GameService{
		games:    make(map[string]*gameEntry),
		tokens:   tokens,
		notifier: notifier,
		build:    func(n int) (tergiversators.Board, error) { return tergiversators.StartGame(n) },
		maxGames: maxGames,
	}
}

// WithBuilder replaces how new boards are set up.
func (s *GameService) WithBuilder(b BoardBuilder) *GameService {
	s.build = b
	return s
}

// CreateGame sets up a new game and issues a token for every active seat.
func (s *GameService) CreateGame(ctx context.Context, numPlayers int) (*model.Game, []model.Seat, error) {
	board, err := s.build(numPlayers)
	if err != nil {
		return nil, nil, err
	}

	entry := &gameEntry{
		id:        uuid.NewString(),
		board:     board,
		createdAt: time.Now().UTC(),
	}

	seats := make([]model.Seat, 0, numPlayers)
	for _, p := range board.ActivePlayers() {
		token, err := s.tokens.GenerateSeatToken(entry.id, p)
		if err != nil {
			return nil, nil, fmt.Errorf("issue token for %s: %w", p, err)
		}
		seats = append(seats, model.Seat{Player: p, Ordinal: p.Ordinal(), Token: token})
	}

	s.mu.Lock()
	if len(s.games) >= s.maxGames {
		s.mu.Unlock()
		return nil, nil, ErrTooManyGames
	}
	s.games[entry.id] = entry
	s.mu.Unlock()

	log := logger.ForGame(ctx, entry.id)
	log.Info().Int("players", numPlayers).Msg("Game created")
	return entry.view(), seats, nil
}

func (s *GameService) lookup(id string) (*gameEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

// GetGame returns the public view of a game.
func (s *GameService) GetGame(ctx context.Context, id string) (*model.Game, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view(), nil
}

// SeatView returns a game as seen by one of its seats, including that
// seat's hand.
func (s *GameService) SeatView(ctx context.Context, id string, seat auth.Seat) (*model.SeatView, error) {
	if seat.GameID != id {
		return nil, ErrSeatMismatch
	}
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.seatView(seat.Player)
	return &v, nil
}

// ListGames returns every hosted game, oldest first.
func (s *GameService) ListGames(ctx context.Context) []model.Game {
	s.mu.RLock()
	entries := make([]*gameEntry, 0, len(s.games))
	for _, e := range s.games {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	games := make([]model.Game, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		games = append(games, *e.view())
		e.mu.Unlock()
	}
	sort.Slice(games, func(i, j int) bool {
		if !games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].CreatedAt.Before(games[j].CreatedAt)
		}
		return games[i].ID < games[j].ID
	})
	return games
}

// DeleteGame removes a game and disconnects anyone watching it.
func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.games[id]; !ok {
		s.mu.Unlock()
		return ErrGameNotFound
	}
	delete(s.games, id)
	s.mu.Unlock()

	s.notifier.GameClosed(id)
	log := logger.ForGame(ctx, id)
	log.Info().Msg("Game deleted")
	return nil
}

// TakeTurn applies an action on behalf of a seat. A rule rejection is not a
// Go error: it is reported in the result, whose board has still passed the
// turn on. Errors are returned only when the action could not be submitted
// at all.
func (s *GameService) TakeTurn(ctx context.Context, id string, seat auth.Seat, a tergiversators.Action) (*model.TurnResult, error) {
	if seat.GameID != id {
		return nil, ErrSeatMismatch
	}
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.winner != nil {
		return nil, ErrGameFinished
	}
	if e.board.NextPlayer() != seat.Player {
		return nil, ErrNotYourTurn
	}

	l := logger.ForGame(ctx, id).With().
		Str("player", string(seat.Player)).
		Str("action", a.Describe()).
		Logger()

	board, winner, rejected := tergiversators.TakeTurn(e.board, a)
	e.board = board
	e.turn++

	result := &model.TurnResult{Accepted: rejected == nil}
	if rejected != nil {
		result.Error = rejected.Error()
		result.Reason = model.ReasonCode(rejected)
		l.Info().Str("reason", result.Reason).Msg("Action rejected")
	} else {
		l.Info().Int("turn", e.turn).Msg("Action accepted")
	}

	if winner != nil {
		now := time.Now().UTC()
		e.winner = winner
		e.finishedAt = &now
		l.Info().Str("winner", winner.String()).Msg("Game finished")
	}

	result.SeatView = e.seatView(seat.Player)
	return result, nil
}
