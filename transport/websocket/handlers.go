package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/payload"
)

func (that *Server) handleSessionNew(ctx context.Context, c *client, msg *Message) error {
	created, err := that.game.CreateSession(ctx)
	if err != nil {
		that.logger.Error("failed to create session", "method", "handleSessionNew", "error", err)
		return c.sendMessage(msg.Action, payload.SessionError("", err))
	}

	c.sessions[created.ID] = struct{}{}

	return c.sendMessage(msg.Action, payload.Session{ID: created.ID})
}

func (that *Server) handleSessionGet(ctx context.Context, c *client, msg *Message) error {
	req, ok := decodeSessionRequest(msg)
	if !ok {
		return c.sendMessage(msg.Action, payload.SessionError("", apperror.ErrMalformedRequest))
	}

	view, err := that.game.GetSession(ctx, req.SessionID)
	if err != nil {
		that.logError("handleSessionGet", req.SessionID, err)
		return c.sendMessage(msg.Action, payload.SessionError(req.SessionID, err))
	}

	return c.sendMessage(msg.Action, payload.NewSession(view))
}

func (that *Server) handleSessionReset(ctx context.Context, c *client, msg *Message) error {
	req, ok := decodeSessionRequest(msg)
	if !ok {
		return c.sendMessage(msg.Action, payload.SessionError("", apperror.ErrMalformedRequest))
	}

	if err := that.game.ResetSession(ctx, req.SessionID); err != nil {
		that.logError("handleSessionReset", req.SessionID, err)
		return c.sendMessage(msg.Action, payload.SessionError(req.SessionID, err))
	}

	return c.sendMessage(msg.Action, payload.Session{ID: req.SessionID})
}

func (that *Server) handleSessionLeave(ctx context.Context, c *client, msg *Message) error {
	req, ok := decodeSessionRequest(msg)
	if !ok {
		return c.sendMessage(msg.Action, payload.SessionError("", apperror.ErrMalformedRequest))
	}

	delete(c.sessions, req.SessionID)

	if err := that.game.DestroySession(ctx, req.SessionID); err != nil {
		that.logError("handleSessionLeave", req.SessionID, err)
		return c.sendMessage(msg.Action, payload.SessionError(req.SessionID, err))
	}

	return c.sendMessage(msg.Action, payload.Session{ID: req.SessionID})
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	var req payload.PlayRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil || !req.Complete() {
		return c.sendMessage(msg.Action, payload.PlayError(apperror.ErrMalformedRequest))
	}

	result, err := that.game.Play(ctx, *req.SessionID, *req.Position)
	if err != nil {
		that.logError("handleGameTurn", *req.SessionID, err)
		return c.sendMessage(msg.Action, payload.PlayError(err))
	}

	return c.sendMessage(msg.Action, payload.NewPlay(result))
}

// handleDisconnect - destroys the sessions the closed connection still owns.
func (that *Server) handleDisconnect(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleDisconnect")

	for id := range c.sessions {
		err := that.game.DestroySession(ctx, id)
		if err != nil && !errors.Is(err, apperror.ErrUnknownSession) {
			log.Error("failed to destroy session", "sessionID", id, "error", err)
		}
	}

	log.Info("client disconnected", "sessions", len(c.sessions))
}

func (that *Server) logError(method, sessionID string, err error) {
	log := that.logger.With("method", method, "sessionID", sessionID)

	if !apperror.IsClientError(err) {
		log.Error("request failed", "error", err)
		return
	}

	log.Info("request rejected", "error", err)
}

func decodeSessionRequest(msg *Message) (payload.SessionRequest, bool) {
	var req payload.SessionRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.SessionID == "" {
		return payload.SessionRequest{}, false
	}

	return req, true
}
