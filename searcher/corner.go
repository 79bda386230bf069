package searcher

import "threetrios/game"

// CornerSeeker takes a free corner, choosing the corner and card that leave
// the opponent the weakest best reply. Without a free corner it plays its
// first card on the upper-left-most empty cell.
type CornerSeeker struct{}

func NewCornerSeeker() *CornerSeeker { return &CornerSeeker{} }

func (c *CornerSeeker) Name() string { return "corner" }

// SelectMove applies each corner placement before scoring the opponent's
// replies only when p is the player to move. Asked on the opponent's turn,
// it scores the replies against the current grid instead.
func (c *CornerSeeker) SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool) {
	hand := s.Hand(p)
	if len(hand) == 0 {
		return game.Move{}, false
	}

	var cands []candidate
	for _, pos := range corners(s.Rows(), s.Cols()) {
		cell, err := s.Cell(pos.Row, pos.Col)
		if err != nil || cell.Kind != game.Empty {
			continue
		}
		for i, card := range hand {
			cands = append(cands, candidate{move: game.Move{Card: card, Row: pos.Row, Col: pos.Col}, hand: i})
		}
	}

	if len(cands) == 0 {
		return firstOpenCell(s, hand[0])
	}

	scores := make([]int, len(cands))
	for i, cand := range cands {
		scores[i] = bestReply(s, p, cand.move)
	}
	return pick(cands, scores, lower)
}

// corners lists the distinct corner positions in row-major order.
func corners(rows, cols int) []game.Position {
	var out []game.Position
	seen := map[game.Position]bool{}
	for _, pos := range []game.Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: cols - 1},
		{Row: rows - 1, Col: 0},
		{Row: rows - 1, Col: cols - 1},
	} {
		if !seen[pos] {
			seen[pos] = true
			out = append(out, pos)
		}
	}
	return out
}

func firstOpenCell(s game.ReadOnlyModel, card game.Card) (game.Move, bool) {
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			cell, err := s.Cell(r, c)
			if err == nil && cell.Kind == game.Empty {
				return game.Move{Card: card, Row: r, Col: c}, true
			}
		}
	}
	return game.Move{}, false
}

// bestReply is the largest number of cards the opponent could flip on the
// turn after p plays m. Lookahead needs p to be the player to move;
// otherwise the reply is scored against the current grid.
func bestReply(s game.ReadOnlyModel, p game.Player, m game.Move) int {
	next := s
	if s.CurrentPlayer() == p {
		succ, _, err := s.Simulate(m)
		if err != nil {
			return 0
		}
		next = succ
	}
	opponent := p.Opponent()
	best := 0
	for _, reply := range candidates(next, opponent) {
		flips := next.NumCardsAbleToFlip(opponent, reply.move.Card, reply.move.Row, reply.move.Col)
		if flips > best {
			best = flips
		}
	}
	return best
}
