package handler

import (
	"io"
	"net/http"

	"github.com/freeeve/tergiversators/internal/auth"
	"github.com/freeeve/tergiversators/internal/service"
)

// maxActionSize bounds an action request body.
const maxActionSize = 4096

// ActionHandler handles action submission.
type ActionHandler struct {
	gameSvc *service.GameService
}

// NewActionHandler creates an ActionHandler.
func NewActionHandler(gameSvc *service.GameService) *ActionHandler {
	return &ActionHandler{gameSvc: gameSvc}
}

// SubmitAction handles POST /api/v1/games/{id}/actions
//
// A rule rejection is still a 200: the turn has passed and the response
// carries the reason alongside the new board.
func (h *ActionHandler) SubmitAction(w http.ResponseWriter, r *http.Request) {
	seat, ok := auth.SeatFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxActionSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	action, err := decodeAction(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid action: "+err.Error())
		return
	}

	result, err := h.gameSvc.TakeTurn(r.Context(), r.PathValue("id"), seat, action)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
