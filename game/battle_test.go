package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("higher north value flips the card above", func(t *testing.T) {
		g := openGrid(t, 3, 3)
		place(t, g, 1, 1, mustCard(t, "red", 8, 3, 6, 2), Red)
		place(t, g, 0, 1, mustCard(t, "blue", 2, 7, 5, 9), Blue)

		flipped, err := Resolve(g, Position{Row: 1, Col: 1}, Normal())

		require.NoError(t, err)
		require.Equal(t, []Position{{0, 1}}, flipped, "8 against 7 should flip (0,1)")
		require.Equal(t, Red, owner(t, g, 0, 1))
	})

	t.Run("weaker placement flips nothing", func(t *testing.T) {
		g := openGrid(t, 3, 3)
		place(t, g, 1, 1, mustCard(t, "red", 8, 3, 6, 2), Red)
		place(t, g, 0, 1, mustCard(t, "blue", 2, 7, 5, 9), Blue)

		flipped, err := Resolve(g, Position{Row: 0, Col: 1}, Normal())

		require.NoError(t, err)
		require.Empty(t, flipped, "7 against 8 should not flip")
		require.Equal(t, Red, owner(t, g, 1, 1))
	})

	t.Run("flips chain across the board", func(t *testing.T) {
		// Red at (0,0) beats (0,1), which then beats (0,2), which beats (1,2).
		g := openGrid(t, 2, 3)
		place(t, g, 0, 1, mustCard(t, "b1", 1, 1, 9, 1), Blue)
		place(t, g, 0, 2, mustCard(t, "b2", 1, 9, 1, 1), Blue)
		place(t, g, 1, 2, mustCard(t, "b3", 1, 1, 1, 1), Blue)
		place(t, g, 0, 0, mustCard(t, "r", 1, 1, 9, 1), Red)

		flipped, err := Resolve(g, Position{Row: 0, Col: 0}, Normal())

		require.NoError(t, err)
		require.Equal(t, []Position{{0, 1}, {0, 2}, {1, 2}}, flipped, "Flips should come out in breadth-first order")
		require.Equal(t, 4, g.CountOwned(Red))
		require.Equal(t, 0, g.CountOwned(Blue))
	})

	t.Run("same rule flips both matching neighbors", func(t *testing.T) {
		g := sameBoard(t)

		flipped, err := Resolve(g, Position{Row: 1, Col: 1}, Same())

		require.NoError(t, err)
		require.Equal(t, []Position{{0, 1}, {1, 2}}, flipped)
		require.Equal(t, Blue, owner(t, g, 2, 1), "Strictly losing south card should stay blue")
	})

	t.Run("normal rule ignores ties on the same board", func(t *testing.T) {
		g := sameBoard(t)

		flipped, err := Resolve(g, Position{Row: 1, Col: 1}, Normal())

		require.NoError(t, err)
		require.Empty(t, flipped)
	})

	t.Run("holes and own cards are skipped", func(t *testing.T) {
		g, err := NewGrid([][]bool{
			{false, true},
			{false, false},
		})
		require.NoError(t, err)
		place(t, g, 0, 0, mustCard(t, "r", 9, 9, 9, 9), Red)
		place(t, g, 1, 0, mustCard(t, "r2", 1, 1, 1, 1), Red)

		flipped, err := Resolve(g, Position{Row: 0, Col: 0}, Normal())

		require.NoError(t, err)
		require.Empty(t, flipped)
	})

	t.Run("empty origin is an illegal state", func(t *testing.T) {
		g := openGrid(t, 2, 2)
		_, err := Resolve(g, Position{Row: 0, Col: 0}, Normal())
		require.ErrorIs(t, err, ErrIllegalState)
	})

	t.Run("hole origin is an illegal state", func(t *testing.T) {
		g, err := NewGrid([][]bool{{true, false}})
		require.NoError(t, err)
		_, err = Resolve(g, Position{Row: 0, Col: 0}, Normal())
		require.ErrorIs(t, err, ErrIllegalState)
	})

	t.Run("out of bounds origin", func(t *testing.T) {
		g := openGrid(t, 2, 2)
		_, err := Resolve(g, Position{Row: 4, Col: 0}, Normal())
		require.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestResolveMonotonic(t *testing.T) {
	// A ring of blue cards all beaten by their red neighbors. Every flip hands
	// the card to red and nothing is ever flipped twice.
	g := openGrid(t, 3, 3)
	strong := mustCard(t, "strong", 9, 9, 9, 9)
	weak := mustCard(t, "weak", 2, 2, 2, 2)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r == 1 && c == 1 {
				continue
			}
			place(t, g, r, c, weak, Blue)
		}
	}
	place(t, g, 1, 1, strong, Red)

	flipped, err := Resolve(g, Position{Row: 1, Col: 1}, Normal())
	require.NoError(t, err)

	// Only the four orthogonal neighbors lose: weak never beats weak.
	require.Len(t, flipped, 4)
	seen := map[Position]bool{}
	for _, p := range flipped {
		require.False(t, seen[p], "position %v flipped twice", p)
		seen[p] = true
		require.Equal(t, Red, owner(t, g, p.Row, p.Col))
	}
	require.Equal(t, 4, g.CountOwned(Blue))
}
