package entity

// Outcome is the classification of a board. The string values are part of the public API.
type Outcome string

const (
	Open  Outcome = "Open"
	Tie   Outcome = "Tie"
	XWins Outcome = "X wins"
	OWins Outcome = "O wins"
)

func (o Outcome) IsFinished() bool {
	return o != Open
}

// Winner - returns the winning mark, or EmptyCell for open and tied boards.
func (o Outcome) Winner() Cell {
	switch o {
	case XWins:
		return PlayerX
	case OWins:
		return PlayerO
	default:
		return EmptyCell
	}
}
