package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// duel lays attacker at (0,0) facing defender at (0,1) on a 1x2 grid.
func duel(t *testing.T, attackerEast, defenderWest int) (*Grid, Position) {
	t.Helper()
	g := openGrid(t, 1, 2)
	place(t, g, 0, 0, mustCard(t, "att", 1, 1, attackerEast, 1), Red)
	place(t, g, 0, 1, mustCard(t, "def", 1, 1, 1, defenderWest), Blue)
	return g, Position{Row: 0, Col: 0}
}

func TestSimpleRules(t *testing.T) {
	cases := []struct {
		name     string
		rule     Rule
		att, def int
		want     bool
	}{
		{"normal higher wins", Normal(), 6, 5, true},
		{"normal tie holds", Normal(), 5, 5, false},
		{"normal lower loses", Normal(), 4, 5, false},
		{"reverse lower wins", Reverse(), 2, 5, true},
		{"reverse tie holds", Reverse(), 5, 5, false},
		{"reverse higher loses", Reverse(), 9, 5, false},
		{"fallen ace one beats ten", FallenAce(), 1, 10, true},
		{"fallen ace ten loses to one", FallenAce(), 10, 1, false},
		{"fallen ace otherwise normal", FallenAce(), 7, 3, true},
		{"fallen ace lower still loses", FallenAce(), 3, 7, false},
		{"normal ten beats one", Normal(), 10, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, att := duel(t, tc.att, tc.def)
			require.Equal(t, tc.want, tc.rule.ShouldFlip(g, att, East))
		})
	}
}

// sameBoard lays out a 3x3 board around a red center card (N5 S4 E3 W10).
// Blue cards sit north, east and south of it; red corners supply the
// matching values. (1,0) stays empty.
func sameBoard(t *testing.T) *Grid {
	t.Helper()
	g := openGrid(t, 3, 3)
	place(t, g, 0, 0, mustCard(t, "c00", 1, 1, 3, 1), Red)
	place(t, g, 0, 1, mustCard(t, "north", 1, 5, 7, 3), Blue)
	place(t, g, 0, 2, mustCard(t, "c02", 1, 1, 1, 2), Red)
	place(t, g, 1, 2, mustCard(t, "east", 8, 8, 8, 3), Blue)
	place(t, g, 2, 0, mustCard(t, "c20", 1, 1, 2, 1), Red)
	place(t, g, 2, 1, mustCard(t, "south", 6, 1, 9, 2), Blue)
	place(t, g, 2, 2, mustCard(t, "c22", 8, 1, 1, 9), Red)
	place(t, g, 1, 1, mustCard(t, "center", 5, 4, 3, 10), Red)
	return g
}

func TestSameRule(t *testing.T) {
	center := Position{Row: 1, Col: 1}

	t.Run("tie with two matches flips", func(t *testing.T) {
		g := sameBoard(t)
		require.True(t, Same().ShouldFlip(g, center, North),
			"North defender matches the center and the west corner")
		require.True(t, Same().ShouldFlip(g, center, East),
			"East defender matches the center and the south-east corner")
	})

	t.Run("strict loss is never flipped", func(t *testing.T) {
		g := sameBoard(t)
		require.Equal(t, 2, countSame(g, Position{Row: 2, Col: 1}), "South defender has two matching neighbors")
		require.False(t, Same().ShouldFlip(g, center, South), "4 against 6 should not flip")
	})

	t.Run("tie with a single match holds", func(t *testing.T) {
		g := openGrid(t, 1, 2)
		place(t, g, 0, 0, mustCard(t, "att", 1, 1, 4, 1), Red)
		place(t, g, 0, 1, mustCard(t, "def", 1, 1, 1, 4), Blue)
		require.False(t, Same().ShouldFlip(g, Position{Row: 0, Col: 0}, East))
	})

	t.Run("higher value flips like normal", func(t *testing.T) {
		g, att := duel(t, 8, 2)
		require.True(t, Same().ShouldFlip(g, att, East))
	})
}

func TestPlusRule(t *testing.T) {
	center := Position{Row: 1, Col: 1}
	build := func(t *testing.T, eastOwner Player) *Grid {
		g := openGrid(t, 3, 3)
		place(t, g, 0, 1, mustCard(t, "north", 1, 7, 1, 1), Blue)
		place(t, g, 1, 2, mustCard(t, "east", 1, 1, 1, 6), eastOwner)
		place(t, g, 1, 1, mustCard(t, "center", 3, 1, 4, 1), Red)
		return g
	}

	t.Run("two equal sums flip a losing comparison", func(t *testing.T) {
		g := build(t, Red)
		require.True(t, Plus().ShouldFlip(g, center, North), "3+7 and 4+6 both sum to 10")
		require.False(t, Normal().ShouldFlip(g, center, North))
	})

	t.Run("a single sum holds", func(t *testing.T) {
		g := openGrid(t, 3, 3)
		place(t, g, 0, 1, mustCard(t, "north", 1, 7, 1, 1), Blue)
		place(t, g, 1, 1, mustCard(t, "center", 3, 1, 4, 1), Red)
		require.False(t, Plus().ShouldFlip(g, center, North))
	})

	t.Run("every matching opponent flips", func(t *testing.T) {
		g := build(t, Blue)
		flipped, err := Resolve(g, center, Plus())
		require.NoError(t, err)
		require.ElementsMatch(t, []Position{{0, 1}, {1, 2}}, flipped)
	})
}

func TestCombinedRule(t *testing.T) {
	t.Run("same and plus are mutually exclusive", func(t *testing.T) {
		_, err := Combined(Same(), Plus())
		require.ErrorIs(t, err, ErrConfiguration)

		inner, err := Combined(Plus(), FallenAce())
		require.NoError(t, err)
		_, err = Combined(Same(), inner)
		require.ErrorIs(t, err, ErrConfiguration, "Nested combinations should be checked too")
	})

	t.Run("empty combination is rejected", func(t *testing.T) {
		_, err := Combined()
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("fallen ace special case short-circuits", func(t *testing.T) {
		rule, err := Combined(Normal())
		require.NoError(t, err)

		g, att := duel(t, 1, 10)
		require.True(t, rule.ShouldFlip(g, att, East), "1 beats 10")
		g, att = duel(t, 10, 1)
		require.False(t, rule.ShouldFlip(g, att, East), "10 loses to 1")
	})

	t.Run("requires a higher value and an agreeing sub-rule", func(t *testing.T) {
		normal, err := Combined(Same(), Normal())
		require.NoError(t, err)
		reverse, err := Combined(Reverse())
		require.NoError(t, err)

		g, att := duel(t, 7, 3)
		require.True(t, normal.ShouldFlip(g, att, East))
		require.False(t, reverse.ShouldFlip(g, att, East), "Reverse never agrees with a higher value")

		g, att = duel(t, 3, 7)
		require.False(t, normal.ShouldFlip(g, att, East))
	})

	t.Run("renders sub-rules in order", func(t *testing.T) {
		rule, err := Combined(Same(), FallenAce())
		require.NoError(t, err)
		require.Equal(t, "combined(same,fallen-ace)", rule.String())
	})
}

func TestParseRules(t *testing.T) {
	t.Run("single names", func(t *testing.T) {
		for _, name := range []string{"normal", "Reverse", " fallen-ace ", "same", "plus"} {
			_, err := ParseRule(name)
			require.NoError(t, err, "rule %q should parse", name)
		}
	})

	t.Run("unknown names", func(t *testing.T) {
		_, err := ParseRule("combined")
		require.ErrorIs(t, err, ErrConfiguration)
		_, err = ParseRule("chaos")
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("lists", func(t *testing.T) {
		rule, err := ParseRules(nil)
		require.NoError(t, err)
		require.Equal(t, NormalRule, rule.Kind())

		rule, err = ParseRules([]string{"reverse"})
		require.NoError(t, err)
		require.Equal(t, ReverseRule, rule.Kind())

		rule, err = ParseRules([]string{"same", "fallen-ace"})
		require.NoError(t, err)
		require.Equal(t, CombinedRule, rule.Kind())

		_, err = ParseRules([]string{"same", "plus"})
		require.ErrorIs(t, err, ErrConfiguration)
	})
}
