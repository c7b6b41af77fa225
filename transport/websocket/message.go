package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	actionSessionNew   = "session:new"
	actionSessionGet   = "session:get"
	actionSessionReset = "session:reset"
	actionSessionLeave = "session:leave"
	actionGameTurn     = "game:turn"
	actionError        = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// client is owned by the goroutine reading its connection, so it needs no locking.
type client struct {
	conn *websocket.Conn

	// sessions opened over this connection, destroyed when it closes
	sessions map[string]struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:     conn,
		sessions: make(map[string]struct{}),
	}
}

func (that *client) sendMessage(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(action string, err error) error {
	if sendErr := that.sendMessage(action, errorPayload{Error: apperror.UserMessage(err)}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}

	return nil
}
