package entity

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
)

const (
	PositionMin = 0
	PositionMax = 8
	CellCount   = 9
)

// WinPatterns - rows, then columns, then diagonals.
var WinPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cell is the content of one board square. A non-empty cell doubles as a player mark.
type Cell string

// Opponent - returns the mark of the other player.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		panic("opponent of a non-player cell: " + string(c))
	}
}

// IsPlayer reports whether c is X or O.
func (c Cell) IsPlayer() bool {
	return c == PlayerX || c == PlayerO
}

// Board is a 3x3 grid stored row-major; index 0 is the top-left cell.
type Board [CellCount]Cell

func IsValidPosition(position int) bool {
	return position >= PositionMin && position <= PositionMax
}

// Evaluate - classifies the board. The outcome is never cached.
func (that *Board) Evaluate() Outcome {
	if pattern, ok := that.WinningPattern(); ok {
		if that[pattern[0]] == PlayerX {
			return XWins
		}
		return OWins
	}

	// the game goes on until all the cells are taken
	for _, cell := range that {
		if cell == EmptyCell {
			return Open
		}
	}

	return Tie
}

// WinningPattern returns the first completed pattern, if any.
func (that *Board) WinningPattern() ([3]int, bool) {
	for _, pattern := range WinPatterns {
		a, b, c := that[pattern[0]], that[pattern[1]], that[pattern[2]]
		if a != EmptyCell && a == b && b == c {
			return pattern, true
		}
	}

	return [3]int{}, false
}

func (that *Board) AvailablePositions() []int {
	positions := make([]int, 0, CellCount)
	for i, cell := range that {
		if cell == EmptyCell {
			positions = append(positions, i)
		}
	}

	return positions
}

func (that *Board) IsTaken(position int) bool {
	return that[position] != EmptyCell
}

// Count - number of cells holding the given value.
func (that *Board) Count(value Cell) int {
	count := 0
	for _, cell := range that {
		if cell == value {
			count++
		}
	}

	return count
}

func (that *Board) Reset() {
	*that = Board{}
}
