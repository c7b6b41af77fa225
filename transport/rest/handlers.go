package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/payload"
)

func (that *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	created, err := that.game.CreateSession(r.Context())
	if err != nil {
		that.logger.Error("failed to create session", "error", err)
		writeJSON(w, statusFor(err), payload.SessionError("", err))
		return
	}

	writeJSON(w, http.StatusCreated, payload.Session{ID: created.ID})
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := that.game.GetSession(r.Context(), id)
	if err != nil {
		that.logError("failed to get session", id, err)
		writeJSON(w, statusFor(err), payload.SessionError(id, err))
		return
	}

	writeJSON(w, http.StatusOK, payload.NewSession(view))
}

func (that *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := that.game.ResetSession(r.Context(), id); err != nil {
		that.logError("failed to reset session", id, err)
		writeJSON(w, statusFor(err), payload.SessionError(id, err))
		return
	}

	writeJSON(w, http.StatusOK, payload.Session{ID: id})
}

func (that *Server) handleDestroySession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := that.game.DestroySession(r.Context(), id); err != nil {
		that.logError("failed to destroy session", id, err)
		writeJSON(w, statusFor(err), payload.SessionError(id, err))
		return
	}

	writeJSON(w, http.StatusOK, payload.Session{ID: id})
}

func (that *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req payload.PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Complete() {
		writeJSON(w, http.StatusBadRequest, payload.PlayError(apperror.ErrMalformedRequest))
		return
	}

	result, err := that.game.Play(r.Context(), *req.SessionID, *req.Position)
	if err != nil {
		that.logError("failed to play turn", *req.SessionID, err)
		writeJSON(w, statusFor(err), payload.PlayError(err))
		return
	}

	writeJSON(w, http.StatusOK, payload.NewPlay(result))
}

// logError - client mistakes are logged at info, everything else at error.
func (that *Server) logError(msg, sessionID string, err error) {
	if !apperror.IsClientError(err) {
		that.logger.Error(msg, "sessionID", sessionID, "error", err)
		return
	}

	that.logger.Info(msg, "sessionID", sessionID, "error", err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrMalformedRequest), errors.Is(err, apperror.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrPositionTaken), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
