package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/freeeve/tergiversators/internal/auth"
	"github.com/freeeve/tergiversators/internal/model"
	"github.com/freeeve/tergiversators/internal/service"
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

const testSecret = "test-secret"

func newTestService(maxGames int) (*service.GameService, *auth.JWTManager, *Hub) {
	jwtMgr := auth.NewJWTManager(testSecret, time.Hour)
	hub := NewHub()
	svc := service.NewGameService(jwtMgr, hub, maxGames).WithBuilder(service.SeededBuilder(11))
	return svc, jwtMgr, hub
}

func createTestGame(t *testing.T, svc *service.GameService, players int) *model.Game {
	t.Helper()
	game, _, err := svc.CreateGame(context.Background(), players)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

func seatRequest(method, target, body string, seat auth.Seat) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.SetPathValue("id", seat.GameID)
	return req.WithContext(auth.SetSeatForTest(req.Context(), seat))
}

func TestCreateGameHandler(t *testing.T) {
	svc, jwtMgr, _ := newTestService(10)
	h := NewGameHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(`{"num_players":4}`))
	rec := httptest.NewRecorder()
	h.CreateGame(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp createGameResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Game.NumPlayers != 4 || len(resp.Seats) != 4 {
		t.Fatalf("expected 4 players and seats, got %d and %d", resp.Game.NumPlayers, len(resp.Seats))
	}
	claims, err := jwtMgr.ValidateToken(resp.Seats[2].Token)
	if err != nil {
		t.Fatalf("seat token: %v", err)
	}
	if claims.GameID != resp.Game.ID || claims.Player != tergiversators.Gamma {
		t.Errorf("unexpected claims %+v", claims.Seat)
	}
}

func TestCreateGameHandlerErrors(t *testing.T) {
	svc, _, _ := newTestService(1)
	h := NewGameHandler(svc)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"too few players", `{"num_players":1}`, http.StatusUnprocessableEntity},
		{"too many players", `{"num_players":6}`, http.StatusUnprocessableEntity},
		{"fills capacity", `{"num_players":2}`, http.StatusCreated},
		{"over capacity", `{"num_players":2}`, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateGame(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListGamesHandlerEmpty(t *testing.T) {
	svc, _, _ := newTestService(10)
	h := NewGameHandler(svc)

	rec := httptest.NewRecorder()
	h.ListGames(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected [], got %s", body)
	}
}

func TestGetGameHandler(t *testing.T) {
	svc, _, _ := newTestService(10)
	h := NewGameHandler(svc)
	game := createTestGame(t, svc, 2)

	req := httptest.NewRequest(http.MethodGet, "/games/"+game.ID, nil)
	req.SetPathValue("id", game.ID)
	rec := httptest.NewRecorder()
	h.GetGame(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got model.Game
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != game.ID || got.Board.NextPlayer != tergiversators.Alpha {
		t.Errorf("unexpected game %+v", got)
	}
	if strings.Contains(rec.Body.String(), `"hand"`) {
		t.Error("public game view must not reveal hands")
	}

	req = httptest.NewRequest(http.MethodGet, "/games/nope", nil)
	req.SetPathValue("id", "nope")
	rec = httptest.NewRecorder()
	h.GetGame(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetSeatHandler(t *testing.T) {
	svc, _, _ := newTestService(10)
	h := NewGameHandler(svc)
	game := createTestGame(t, svc, 2)

	rec := httptest.NewRecorder()
	h.GetSeat(rec, seatRequest(http.MethodGet, "/games/x/seat", "", auth.Seat{GameID: game.ID, Player: tergiversators.Beta}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view model.SeatView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Player != tergiversators.Beta || view.Hand.Total() != 8 {
		t.Errorf("unexpected seat view %+v", view)
	}

	req := seatRequest(http.MethodGet, "/games/x/seat", "", auth.Seat{GameID: "other", Player: tergiversators.Beta})
	req.SetPathValue("id", game.ID)
	rec = httptest.NewRecorder()
	h.GetSeat(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for a foreign token, got %d", rec.Code)
	}
}

func TestDeleteGameHandler(t *testing.T) {
	svc, _, _ := newTestService(10)
	h := NewGameHandler(svc)
	game := createTestGame(t, svc, 3)

	for _, want := range []int{http.StatusNoContent, http.StatusNotFound} {
		req := httptest.NewRequest(http.MethodDelete, "/games/"+game.ID, nil)
		req.SetPathValue("id", game.ID)
		rec := httptest.NewRecorder()
		h.DeleteGame(rec, req)
		if rec.Code != want {
			t.Errorf("expected %d, got %d", want, rec.Code)
		}
	}
}

func TestSubmitActionHandler(t *testing.T) {
	svc, _, _ := newTestService(10)
	h := NewActionHandler(svc)
	game := createTestGame(t, svc, 2)
	alpha := auth.Seat{GameID: game.ID, Player: tergiversators.Alpha}
	beta := auth.Seat{GameID: game.ID, Player: tergiversators.Beta}

	// Out of turn.
	rec := httptest.NewRecorder()
	h.SubmitAction(rec, seatRequest(http.MethodPost, "/", `{"type":"negotiate"}`, beta))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 out of turn, got %d", rec.Code)
	}

	// Malformed.
	rec = httptest.NewRecorder()
	h.SubmitAction(rec, seatRequest(http.MethodPost, "/", `{"crew":"goons"}`, alpha))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing type, got %d", rec.Code)
	}

	// A rule rejection is a 200 that still passes the turn.
	rec = httptest.NewRecorder()
	h.SubmitAction(rec, seatRequest(http.MethodPost, "/", `{"type":"battle","crew":"rogues","zone":"red"}`, alpha))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result model.TurnResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Accepted || result.Reason != "must_remove_when_attacking" {
		t.Errorf("expected must_remove_when_attacking rejection, got %+v", result)
	}
	if result.Game.Board.NextPlayer != tergiversators.Beta {
		t.Errorf("expected beta to play next, got %s", result.Game.Board.NextPlayer)
	}

	// Beta opens a negotiation and keeps the turn.
	rec = httptest.NewRecorder()
	h.SubmitAction(rec, seatRequest(http.MethodPost, "/", `{"type":"start_negotiation"}`, beta))
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Accepted || !result.Game.Board.Negotiating || result.Game.Board.NextPlayer != tergiversators.Beta {
		t.Errorf("unexpected negotiation result %+v", result)
	}
}

func TestSubmitActionHandlerWithoutSeat(t *testing.T) {
	svc, _, _ := newTestService(10)
	h := NewActionHandler(svc)

	rec := httptest.NewRecorder()
	h.SubmitAction(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"negotiate"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
