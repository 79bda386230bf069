package searcher

import "threetrios/game"

// FlipMaximizer plays the move that flips the most cards right away.
type FlipMaximizer struct{}

func NewFlipMaximizer() *FlipMaximizer { return &FlipMaximizer{} }

func (f *FlipMaximizer) Name() string { return "flipmax" }

func (f *FlipMaximizer) SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool) {
	cands := candidates(s, p)
	return pick(cands, flipScores(s, p, cands), higher)
}

// LeastExposed plays the move that flips the fewest cards, using the flip
// count as a proxy for how much the move exposes.
type LeastExposed struct{}

func NewLeastExposed() *LeastExposed { return &LeastExposed{} }

func (l *LeastExposed) Name() string { return "defensive" }

func (l *LeastExposed) SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool) {
	cands := candidates(s, p)
	return pick(cands, flipScores(s, p, cands), lower)
}

func flipScores(s game.ReadOnlyModel, p game.Player, cands []candidate) []int {
	scores := make([]int, len(cands))
	for i, c := range cands {
		scores[i] = s.NumCardsAbleToFlip(p, c.move.Card, c.move.Row, c.move.Col)
	}
	return scores
}
