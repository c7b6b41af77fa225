package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	HumanMark    = entity.PlayerX
	ComputerMark = entity.PlayerO
)

type MoveChooser interface {
	ChooseMove(board *entity.Board, player entity.Cell) int
}

// Round is the result of one human move and, when the game is still open, the computer's reply.
type Round struct {
	HumanMove      int
	ComputerMove   int
	ComputerPlayed bool
	Outcome        entity.Outcome
}

type GameController struct {
	chooser MoveChooser
}

func NewGameController(chooser MoveChooser) *GameController {
	return &GameController{
		chooser: chooser,
	}
}

// ApplyHumanMove - plays X at position and lets the computer answer.
// On error the board is left untouched.
func (that *GameController) ApplyHumanMove(board *entity.Board, position int) (Round, error) {
	if err := validateMove(board, position); err != nil {
		return Round{}, fmt.Errorf("invalid turn: %w", err)
	}

	board[position] = HumanMark

	round := Round{
		HumanMove: position,
		Outcome:   board.Evaluate(),
	}

	// no computer move on a finished board
	if round.Outcome.IsFinished() {
		return round, nil
	}

	computerMove := that.chooser.ChooseMove(board, ComputerMark)
	placeComputerMark(board, computerMove)

	round.ComputerMove = computerMove
	round.ComputerPlayed = true
	round.Outcome = board.Evaluate()

	return round, nil
}

// validateMove - checks if the move is valid.
func validateMove(board *entity.Board, position int) error {
	if !entity.IsValidPosition(position) {
		return fmt.Errorf("%w: position %d", apperror.ErrInvalidPosition, position)
	}

	if board.Evaluate().IsFinished() {
		return apperror.ErrGameFinished
	}

	if board.IsTaken(position) {
		return fmt.Errorf("%w: position %d", apperror.ErrPositionTaken, position)
	}

	return nil
}

func placeComputerMark(board *entity.Board, position int) {
	if !entity.IsValidPosition(position) || board.IsTaken(position) {
		panic(fmt.Sprintf("tictactoe: computer chose unavailable position %d", position))
	}

	board[position] = ComputerMark
}
