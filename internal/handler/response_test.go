package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freeeve/tergiversators/internal/service"
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"name": "test", "value": "42"}
	writeJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["name"] != "test" || result["value"] != "42" {
		t.Errorf("unexpected body: %v", result)
	}
}

func TestWriteJSONWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]int{"id": 1})
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "missing field")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var result map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["error"] != "missing field" {
		t.Errorf("expected error=missing field, got %s", result["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	body := `{"name":"alice","age":30}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var data struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := decodeJSON(req, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Name != "alice" {
		t.Errorf("expected name=alice, got %s", data.Name)
	}
	if data.Age != 30 {
		t.Errorf("expected age=30, got %d", data.Age)
	}
}

func TestDecodeJSONInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	var data struct{}
	if err := decodeJSON(req, &data); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var data struct{}
	if err := decodeJSON(req, &data); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestWriteJSONSlice(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, []string{"a", "b", "c"})

	var result []string
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("expected 3 elements, got %d", len(result))
	}
}

func TestWriteJSONEmptySlice(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, []struct{}{})

	body := strings.TrimSpace(rec.Body.String())
	if body != "[]" {
		t.Errorf("expected [], got %s", body)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrGameNotFound, http.StatusNotFound},
		{service.ErrGameFinished, http.StatusConflict},
		{service.ErrNotYourTurn, http.StatusConflict},
		{service.ErrSeatMismatch, http.StatusForbidden},
		{service.ErrTooManyGames, http.StatusServiceUnavailable},
		{tergiversators.ErrBadPlayerCount, http.StatusUnprocessableEntity},
		{fmt.Errorf("lookup: %w", service.ErrGameNotFound), http.StatusNotFound},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.want {
			t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		body    string
		want    tergiversators.Action
		wantErr bool
	}{
		{`{"type":"recruit","crew":"goons","zone":"gray"}`, tergiversators.Recruit(tergiversators.Goons, tergiversators.Gray), false},
		{`{"type":"march","crew":"rogues","from":"red","to":"orange","amount":2}`, tergiversators.March(tergiversators.Rogues, tergiversators.Red, tergiversators.Orange, 2), false},
		{`{"type":"battle","crew":"bullies","zone":"blue","goons":1}`, tergiversators.Battle(tergiversators.Bullies, tergiversators.Blue, 0, 0, 1), false},
		{`{"type":"negotiate"}`, tergiversators.StartNegotiation(), false},
		{`{"type":"end_negotiation","crew":"rogues"}`, tergiversators.EndNegotiation(tergiversators.Rogues), false},
		{`{}`, tergiversators.Action{}, true},
		{`{"type":"surrender"}`, tergiversators.Action{}, true},
		{`{"type":"recruit","crew":"pirates","zone":"gray"}`, tergiversators.Action{}, true},
		{`{"type":"recruit","crew":"goons","zone":"atlantis"}`, tergiversators.Action{}, true},
		{`{"type":"march","amount":300}`, tergiversators.Action{}, true},
	}
	for _, tt := range tests {
		got, err := decodeAction([]byte(tt.body))
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %+v", tt.body, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tt.body, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.body, got, tt.want)
		}
	}
}
