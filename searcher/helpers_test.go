package searcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"threetrios/game"
)

func card(t *testing.T, name string, n, s, e, w int) game.Card {
	t.Helper()
	c, err := game.NewCard(name, n, s, e, w)
	require.NoError(t, err)
	return c
}

func uniform(t *testing.T, prefix string, count, value int) []game.Card {
	t.Helper()
	cards := make([]game.Card, count)
	for i := range cards {
		cards[i] = card(t, fmt.Sprintf("%s%d", prefix, i), value, value, value, value)
	}
	return cards
}

// newState starts an unshuffled match on an open rows x cols grid.
func newState(t *testing.T, rows, cols int, deck []game.Card) *game.GameState {
	t.Helper()
	g, err := game.NewOpenGrid(rows, cols)
	require.NoError(t, err)
	gs := game.NewGameState(game.Normal())
	require.NoError(t, gs.StartGame(g, deck, false))
	return gs
}

func play(t *testing.T, gs *game.GameState, c game.Card, row, col int) {
	t.Helper()
	_, err := gs.PlayCard(gs.CurrentPlayer(), c, row, col)
	require.NoError(t, err)
}

// stubStrategy returns a fixed answer.
type stubStrategy struct {
	name  string
	move  game.Move
	ok    bool
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) SelectMove(game.Player, game.ReadOnlyModel) (game.Move, bool) {
	s.calls++
	return s.move, s.ok
}

// rejectingModel fails to simulate moves of one card, or of every card.
type rejectingModel struct {
	game.ReadOnlyModel
	rejected  string
	rejectAll bool
}

func (r rejectingModel) Simulate(m game.Move) (game.ReadOnlyModel, int, error) {
	if r.rejectAll || m.Card.Name == r.rejected {
		return nil, 0, fmt.Errorf("%w: %s", game.ErrIllegalMove, m.Card.Name)
	}
	return r.ReadOnlyModel.Simulate(m)
}
