package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type sessionStore interface {
	Create(ctx context.Context) (string, error)
	Get(ctx context.Context, id string) (entity.Board, bool, error)
	Update(ctx context.Context, id string, fn func(board *entity.Board) error) (bool, error)
	Reset(ctx context.Context, id string) (bool, error)
	Destroy(ctx context.Context, id string) (bool, error)
}

type roundController interface {
	ApplyHumanMove(board *entity.Board, position int) (tictactoe.Round, error)
}

type CreateSessionResult struct {
	ID string
}

// PlayResult - positions are 1-based; ComputerMovePosition is 0 when the computer did not move.
// Board is the position the round ended on, before a finished session is reset.
type PlayResult struct {
	ComputerMovePosition int
	BoardState           entity.Outcome
	Board                entity.Board
	WinningLine          []int
}

type SessionView struct {
	ID         string
	Board      entity.Board
	BoardState entity.Outcome
}

type GameManager struct {
	logger     *slog.Logger
	store      sessionStore
	controller roundController
}

func NewGameManager(logger *slog.Logger, store sessionStore, controller roundController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		store:      store,
		controller: controller,
	}
}

func (that *GameManager) CreateSession(ctx context.Context) (CreateSessionResult, error) {
	id, err := that.store.Create(ctx)
	if err != nil {
		return CreateSessionResult{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", id)

	return CreateSessionResult{ID: id}, nil
}

// Play - applies the human move at position (1..9) and the computer's reply.
// A session whose game ends in this round is reset before Play returns.
func (that *GameManager) Play(ctx context.Context, sessionID string, position int) (PlayResult, error) {
	log := that.logger.With("method", "Play", "sessionID", sessionID)

	if sessionID == "" {
		return PlayResult{}, fmt.Errorf("%w: missing session id", apperror.ErrMalformedRequest)
	}

	if position < 1 || position > entity.CellCount {
		return PlayResult{}, fmt.Errorf("%w: position %d", apperror.ErrInvalidPosition, position)
	}

	var result PlayResult

	found, err := that.store.Update(ctx, sessionID, func(board *entity.Board) error {
		round, err := that.controller.ApplyHumanMove(board, position-1)
		if err != nil {
			return err
		}

		result = newPlayResult(round, board)

		if round.Outcome.IsFinished() {
			board.Reset()
		}

		return nil
	})
	if err != nil {
		return PlayResult{}, fmt.Errorf("failed to play turn: %w", err)
	}

	if !found {
		return PlayResult{}, fmt.Errorf("%w: %s", apperror.ErrUnknownSession, sessionID)
	}

	log.Debug("turn played",
		"position", position,
		"computerMove", result.ComputerMovePosition,
		"boardState", result.BoardState,
	)

	if result.BoardState.IsFinished() {
		log.Info("game finished, session reset", "boardState", result.BoardState)
	}

	return result, nil
}

func (that *GameManager) GetSession(ctx context.Context, sessionID string) (SessionView, error) {
	board, found, err := that.store.Get(ctx, sessionID)
	if err != nil {
		return SessionView{}, fmt.Errorf("failed to get session: %w", err)
	}

	if !found {
		return SessionView{}, fmt.Errorf("%w: %s", apperror.ErrUnknownSession, sessionID)
	}

	return SessionView{
		ID:         sessionID,
		Board:      board,
		BoardState: board.Evaluate(),
	}, nil
}

// ResetSession - abandons the current game and keeps the session id.
func (that *GameManager) ResetSession(ctx context.Context, sessionID string) error {
	found, err := that.store.Reset(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}

	if !found {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownSession, sessionID)
	}

	that.logger.Info("session reset", "sessionID", sessionID)

	return nil
}

func (that *GameManager) DestroySession(ctx context.Context, sessionID string) error {
	found, err := that.store.Destroy(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	if !found {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownSession, sessionID)
	}

	that.logger.Info("session destroyed", "sessionID", sessionID)

	return nil
}

func newPlayResult(round tictactoe.Round, board *entity.Board) PlayResult {
	result := PlayResult{
		BoardState: round.Outcome,
		Board:      *board,
	}

	if round.ComputerPlayed {
		result.ComputerMovePosition = round.ComputerMove + 1
	}

	if pattern, ok := board.WinningPattern(); ok {
		result.WinningLine = []int{pattern[0] + 1, pattern[1] + 1, pattern[2] + 1}
	}

	return result
}
