// Package payload holds the JSON bodies shared by the REST and WebSocket transports.
package payload

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

// PlayRequest - pointers tell a missing field apart from a zero value.
type PlayRequest struct {
	SessionID *string `json:"sessionId"`
	Position  *int    `json:"position"`
}

func (that *PlayRequest) Complete() bool {
	return that.SessionID != nil && that.Position != nil
}

type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

type Session struct {
	ID         string         `json:"id"`
	Board      *entity.Board  `json:"board,omitempty"`
	BoardState entity.Outcome `json:"boardState,omitempty"`
	Error      string         `json:"error"`
}

type Play struct {
	ComputerMovePosition int            `json:"computerMovePosition"`
	BoardState           entity.Outcome `json:"boardState,omitempty"`
	Board                *entity.Board  `json:"board,omitempty"`
	WinningLine          []int          `json:"winningLine,omitempty"`
	Error                string         `json:"error"`
}

func NewSession(view usecase.SessionView) Session {
	return Session{
		ID:         view.ID,
		Board:      &view.Board,
		BoardState: view.BoardState,
	}
}

func NewPlay(result usecase.PlayResult) Play {
	return Play{
		ComputerMovePosition: result.ComputerMovePosition,
		BoardState:           result.BoardState,
		Board:                &result.Board,
		WinningLine:          result.WinningLine,
	}
}

func PlayError(err error) Play {
	return Play{Error: apperror.UserMessage(err)}
}

func SessionError(id string, err error) Session {
	return Session{ID: id, Error: apperror.UserMessage(err)}
}
