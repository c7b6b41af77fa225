package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// BiasScore is the magnitude of a win before the depth bonus is added.
const BiasScore = 10

const (
	minScore = math.MinInt
	maxScore = math.MaxInt
)

// Result - score of a position and the number of nodes visited to compute it.
type Result struct {
	Score int
	Nodes int
}

// Search - runs minimax over the board for toMove and returns the score from the maximizer's point of view.
//
// The maximizer is toMove when maximizing is true, and its opponent otherwise.
// The board is mutated while searching and restored before Search returns.
// Alpha must be strictly lower than beta.
func Search(board *entity.Board, depth int, maximizing bool, toMove entity.Cell, alpha, beta int, pruning bool) Result {
	if alpha >= beta {
		panic("minimax: alpha must be lower than beta")
	}

	return search(board, depth, maximizing, toMove, alpha, beta, pruning)
}

func search(board *entity.Board, depth int, maximizing bool, toMove entity.Cell, alpha, beta int, pruning bool) Result {
	if depth < 0 {
		panic("minimax: negative depth")
	}

	if !toMove.IsPlayer() {
		panic("minimax: invalid player " + string(toMove))
	}

	outcome := board.Evaluate()
	if depth == 0 || outcome.IsFinished() {
		return Result{Score: terminalScore(outcome, depth, maximizing, toMove), Nodes: 1}
	}

	best := initScore(maximizing)
	nodes := 0

	for position := range board {
		if board[position] != entity.EmptyCell {
			continue
		}

		board[position] = toMove
		child := search(board, depth-1, !maximizing, toMove.Opponent(), alpha, beta, pruning)
		board[position] = entity.EmptyCell

		nodes += child.Nodes

		if maximizing {
			best = max(best, child.Score)
			alpha = max(alpha, best)
		} else {
			best = min(best, child.Score)
			beta = min(beta, best)
		}

		if pruning && alpha >= beta {
			break
		}
	}

	return Result{Score: best, Nodes: nodes + 1}
}

// terminalScore rewards fast wins and slow losses: more depth left means a shallower node.
func terminalScore(outcome entity.Outcome, depth int, maximizing bool, toMove entity.Cell) int {
	winner := outcome.Winner()
	if winner == entity.EmptyCell {
		// a tie, or an open board at the depth limit
		return 0
	}

	maximizer := toMove
	if !maximizing {
		maximizer = toMove.Opponent()
	}

	if winner == maximizer {
		return BiasScore + depth
	}

	return -(BiasScore + depth)
}

func initScore(maximizing bool) int {
	if maximizing {
		return minScore
	}

	return maxScore
}
