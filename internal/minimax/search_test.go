package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

type position struct {
	board  entity.Board
	toMove entity.Cell
}

// reachablePositions walks every legal game from the empty board and returns each open position once.
func reachablePositions() []position {
	seen := make(map[entity.Board]bool)
	var positions []position

	var walk func(board entity.Board, toMove entity.Cell)
	walk = func(board entity.Board, toMove entity.Cell) {
		if seen[board] || board.Evaluate().IsFinished() {
			return
		}

		seen[board] = true
		positions = append(positions, position{board: board, toMove: toMove})

		for _, cell := range board.AvailablePositions() {
			next := board
			next[cell] = toMove
			walk(next, toMove.Opponent())
		}
	}

	walk(entity.Board{}, x)

	return positions
}

func TestSearch_TerminalScores(t *testing.T) {
	t.Run("Shallower wins score higher", func(t *testing.T) {
		// Given: a board O has already won, searched with X to move and O maximizing
		board := entity.Board{
			o, o, o,
			x, x, e,
			x, e, e,
		}

		// When: scoring it at two different remaining depths
		shallow := Search(&board, 4, false, x, minScore, maxScore, true)
		deep := Search(&board, 2, false, x, minScore, maxScore, true)

		// Then: the score should be the bias plus the remaining depth
		assert.Equal(t, BiasScore+4, shallow.Score)
		assert.Equal(t, BiasScore+2, deep.Score)
		assert.Greater(t, shallow.Score, deep.Score)
		assert.Equal(t, 1, shallow.Nodes)
	})

	t.Run("Shallower losses score lower", func(t *testing.T) {
		// Given: a board X has already won while O is the maximizer
		board := entity.Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		// When: scoring it at two different remaining depths
		shallow := Search(&board, 4, false, x, minScore, maxScore, true)
		deep := Search(&board, 1, false, x, minScore, maxScore, true)

		// Then: the earlier loss should be the worse one
		assert.Equal(t, -(BiasScore + 4), shallow.Score)
		assert.Equal(t, -(BiasScore + 1), deep.Score)
		assert.Less(t, shallow.Score, deep.Score)
	})

	t.Run("Maximizing side is the player to move when maximizing", func(t *testing.T) {
		// Given: a board won by X, searched with X to move and X maximizing
		board := entity.Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		// When: scoring it
		result := Search(&board, 3, true, x, minScore, maxScore, false)

		// Then: the win should count for X
		assert.Equal(t, BiasScore+3, result.Score)
	})

	t.Run("Tie scores zero", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		result := Search(&board, 0, true, o, minScore, maxScore, true)

		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 1, result.Nodes)
	})

	t.Run("Open board at the depth limit scores zero", func(t *testing.T) {
		board := entity.Board{x, e, e, e, e, e, e, e, e}

		result := Search(&board, 0, false, o, minScore, maxScore, true)

		assert.Equal(t, 0, result.Score)
	})
}

func TestSearch_CountsNodes(t *testing.T) {
	// Given: a board with a single empty cell
	board := entity.Board{
		x, o, x,
		x, o, o,
		o, x, e,
	}

	// When: searching with X to move
	result := Search(&board, 1, false, x, minScore, maxScore, false)

	// Then: the root and its only child should be counted, and the game is a tie
	assert.Equal(t, 2, result.Nodes)
	assert.Equal(t, 0, result.Score)
}

func TestSearch_LeavesBoardUnchanged(t *testing.T) {
	for _, pos := range reachablePositions() {
		for _, pruning := range []bool{true, false} {
			// Given: any reachable board
			board := pos.board

			// When: searching it
			Search(&board, board.Count(e), true, pos.toMove, minScore, maxScore, pruning)

			// Then: the board should be exactly as it was
			require.Equal(t, pos.board, board)
		}
	}
}

func TestSearch_PanicsOnClosedWindow(t *testing.T) {
	board := entity.Board{}

	assert.Panics(t, func() {
		Search(&board, 9, true, x, 5, 5, true)
	})
}

func TestSearch_PanicsOnInvalidPlayer(t *testing.T) {
	board := entity.Board{}

	assert.Panics(t, func() {
		Search(&board, 9, true, e, minScore, maxScore, true)
	})
}
