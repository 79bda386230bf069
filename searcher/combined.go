package searcher

import "threetrios/game"

// Accept decides whether a primary strategy's move is good enough to play.
type Accept func(p game.Player, s game.ReadOnlyModel, m game.Move) bool

// AcceptAll never rejects a move.
func AcceptAll(game.Player, game.ReadOnlyModel, game.Move) bool { return true }

// Combined asks Primary first and falls back to Secondary when Primary has
// no move or Accept rejects it.
type Combined struct {
	Primary   Strategy
	Secondary Strategy
	Accept    Accept
}

func NewCombined(primary, secondary Strategy) *Combined {
	return &Combined{Primary: primary, Secondary: secondary, Accept: AcceptAll}
}

func (c *Combined) Name() string {
	return c.Primary.Name() + "+" + c.Secondary.Name()
}

func (c *Combined) SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool) {
	accept := c.Accept
	if accept == nil {
		accept = AcceptAll
	}
	if m, ok := c.Primary.SelectMove(p, s); ok && accept(p, s, m) {
		return m, true
	}
	return c.Secondary.SelectMove(p, s)
}
