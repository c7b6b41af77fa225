package minimax

import (
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Candidate is one root move with its score.
type Candidate struct {
	Position int
	Score    int
	Nodes    int
}

// Analysis - outcome of a root search. Candidates are sorted by position.
type Analysis struct {
	Position   int
	Score      int
	Nodes      int
	Candidates []Candidate
}

type Option func(*Engine)

// WithPruning toggles alpha-beta pruning. It only changes the node count, never the chosen move.
func WithPruning(enabled bool) Option {
	return func(e *Engine) {
		e.pruning = enabled
	}
}

// WithParallel scores root moves concurrently, each on its own copy of the board.
func WithParallel(enabled bool) Option {
	return func(e *Engine) {
		e.parallel = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With("component", "minimax")
	}
}

type Engine struct {
	logger   *slog.Logger
	pruning  bool
	parallel bool
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		pruning: true,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// ChooseMove - returns the best position for player. Ties go to the lowest index.
// The board must have at least one empty cell.
func (that *Engine) ChooseMove(board *entity.Board, player entity.Cell) int {
	return that.Analyze(board, player).Position
}

// Analyze scores every available position for player and picks the strictly highest one.
func (that *Engine) Analyze(board *entity.Board, player entity.Cell) Analysis {
	if !player.IsPlayer() {
		panic("minimax: invalid player " + string(player))
	}

	positions := board.AvailablePositions()
	if len(positions) == 0 {
		panic("minimax: no available positions")
	}

	candidates := make([]Candidate, len(positions))
	if that.parallel {
		that.scoreParallel(board, player, positions, candidates)
	} else {
		for i, position := range positions {
			candidates[i] = that.score(board, player, position)
		}
	}

	analysis := Analysis{
		Position:   candidates[0].Position,
		Score:      candidates[0].Score,
		Candidates: candidates,
	}

	for _, candidate := range candidates {
		analysis.Nodes += candidate.Nodes

		if candidate.Score > analysis.Score {
			analysis.Position = candidate.Position
			analysis.Score = candidate.Score
		}
	}

	if that.logger != nil {
		that.logger.Debug("move chosen",
			"player", player,
			"position", analysis.Position,
			"score", analysis.Score,
			"nodes", analysis.Nodes,
			"pruning", that.pruning,
			"parallel", that.parallel,
		)
	}

	return analysis
}

// score plays position for player and searches the reply with the opponent minimizing.
func (that *Engine) score(board *entity.Board, player entity.Cell, position int) Candidate {
	board[position] = player
	depth := board.Count(entity.EmptyCell)
	result := Search(board, depth, false, player.Opponent(), minScore, maxScore, that.pruning)
	board[position] = entity.EmptyCell

	return Candidate{
		Position: position,
		Score:    result.Score,
		Nodes:    result.Nodes,
	}
}

func (that *Engine) scoreParallel(board *entity.Board, player entity.Cell, positions []int, candidates []Candidate) {
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, position := range positions {
		i, position := i, position
		scratch := *board

		group.Go(func() error {
			candidates[i] = that.score(&scratch, player, position)
			return nil
		})
	}

	// the workers never fail
	_ = group.Wait()
}
