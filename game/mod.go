package game

// Player identifies one of the two seats of a match. None marks an unowned
// cell or a tied result.
type Player int

const (
	None Player = iota
	Red
	Blue
)

func (p Player) String() string {
	switch p {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

// Opponent returns the other seat. None has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return None
	}
}

// Move is a card placement on a grid coordinate.
type Move struct {
	Card Card
	Row  int
	Col  int
}

type StateHash uint64

// ReadOnlyModel is the view of a match handed to move-selection strategies.
// None of its methods change the state they are called on.
type ReadOnlyModel interface {
	Rows() int
	Cols() int
	Cell(row, col int) (Cell, error)
	Hand(p Player) []Card
	CurrentPlayer() Player
	IsGameOver() bool
	IsLegalMove(p Player, card Card, row, col int) bool
	Score(p Player) int
	Hash() StateHash
	// NumCardsAbleToFlip places card for p on a copy of the grid and returns
	// how many cards the resulting battle would flip.
	NumCardsAbleToFlip(p Player, card Card, row, col int) int
	// Simulate applies a move for the current player to a copy of the state
	// and returns the copy together with the number of flips.
	Simulate(m Move) (ReadOnlyModel, int, error)
}

// Evaluates a state from p's perspective. Larger is better for p.
type Evaluate func(s ReadOnlyModel, p Player) int
