package game

// EvaluateScore compares final-score totals (owned cells plus hand) from p's
// perspective.
func EvaluateScore(s ReadOnlyModel, p Player) int {
	return s.Score(p) - s.Score(p.Opponent())
}

// EvaluateBoard compares owned cells only, ignoring cards still in hand.
func EvaluateBoard(s ReadOnlyModel, p Player) int {
	mine, theirs := 0, 0
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			cell, err := s.Cell(r, c)
			if err != nil || cell.Kind != Occupied {
				continue
			}
			switch cell.Owner {
			case p:
				mine++
			case p.Opponent():
				theirs++
			}
		}
	}
	return mine - theirs
}
