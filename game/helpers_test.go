package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustCard builds a card from north, south, east and west values.
func mustCard(t *testing.T, name string, n, s, e, w int) Card {
	t.Helper()
	c, err := NewCard(name, n, s, e, w)
	require.NoError(t, err)
	return c
}

func openGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewOpenGrid(rows, cols)
	require.NoError(t, err)
	return g
}

func place(t *testing.T, g *Grid, row, col int, c Card, owner Player) {
	t.Helper()
	require.True(t, g.Place(row, col, c, owner), "cell (%d,%d) should accept a card", row, col)
}

func owner(t *testing.T, g *Grid, row, col int) Player {
	t.Helper()
	c, err := g.Cell(row, col)
	require.NoError(t, err)
	return c.Owner
}

// deck returns n distinct cards with uniform values.
func deck(t *testing.T, n, value int) []Card {
	t.Helper()
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = mustCard(t, fmt.Sprintf("card%d", i), value, value, value, value)
	}
	return cards
}

// startedGame starts a 3x3 open match where every card has the same value,
// so no battle ever flips anything.
func startedGame(t *testing.T, rule Rule, options ...Option) *GameState {
	t.Helper()
	gs := NewGameState(rule, options...)
	require.NoError(t, gs.StartGame(openGrid(t, 3, 3), deck(t, 10, 5), false))
	return gs
}

type recorder struct {
	events []Event
}

func (r *recorder) OnStatus(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
