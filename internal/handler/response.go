package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/tergiversators/internal/service"
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// errorStatus maps service and rule errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGameFinished), errors.Is(err, service.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, service.ErrSeatMismatch):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, tergiversators.ErrBadPlayerCount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with the status errorStatus picks for it.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, errorStatus(err), err.Error())
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// decodeAction parses an action, requiring its type to be present so that an
// empty object is not mistaken for a recruit.
func decodeAction(data []byte) (tergiversators.Action, error) {
	// The outer Type shadows the embedded one when decoding.
	var req struct {
		Type *tergiversators.ActionType `json:"type"`
		tergiversators.Action
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return tergiversators.Action{}, err
	}
	if req.Type == nil {
		return tergiversators.Action{}, fmt.Errorf("action type is required")
	}
	a := req.Action
	a.Type = *req.Type
	return a, nil
}
