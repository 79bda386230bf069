package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"threetrios/experiments/metrics"
	"threetrios/game"
)

func smallMatch(t *testing.T) NewMatch {
	return func(n int) (*game.GameState, error) {
		deck := make([]game.Card, 10)
		for i := range deck {
			c, err := game.NewCard(fmt.Sprintf("card%d", i), 1+i%9, 1+(i+3)%9, 1+(i+5)%9, 1+(i+7)%9)
			require.NoError(t, err)
			deck[i] = c
		}
		g, err := game.NewOpenGrid(3, 3)
		if err != nil {
			return nil, err
		}
		gs := game.NewGameState(game.Normal(), game.WithSeed(uint64(n)))
		return gs, gs.StartGame(g, deck, true)
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows)
}

func TestLookup(t *testing.T) {
	require.Equal(t, []string{"depth", "parallelism", "strategies"}, Names())

	exp, err := Lookup("strategies")
	require.NoError(t, err)
	require.Len(t, exp.MatchUps, 4)
	require.Len(t, exp.Configs, 5, "Every agent plus the baseline")
	for _, matchUp := range exp.MatchUps {
		require.Equal(t, baseline, matchUp[0])
	}

	_, err = Lookup("nope")
	require.ErrorIs(t, err, game.ErrConfiguration)
}

func TestRun(t *testing.T) {
	exp := Experiment{
		Name: "smoke",
		Configs: []metrics.AgentConfig{
			baseline,
			{ID: 1, Strategy: "corner"},
		},
		MatchUps: [][2]metrics.AgentConfig{{baseline, {ID: 1, Strategy: "corner"}}},
	}

	dir, err := Run(exp, 2, t.TempDir(), smallMatch(t))

	require.NoError(t, err)
	require.Equal(t, 3, countRows(t, filepath.Join(dir, "agent_configs.csv")))
	require.Equal(t, 3, countRows(t, filepath.Join(dir, "game_records.csv")), "Header plus two games")
	require.Equal(t, 19, countRows(t, filepath.Join(dir, "move_records.csv")), "Header plus nine moves per game")
}

func TestRunRejectsUnknownStrategy(t *testing.T) {
	exp := Experiment{
		Name:     "broken",
		MatchUps: [][2]metrics.AgentConfig{{baseline, {ID: 1, Strategy: "random"}}},
	}

	_, err := Run(exp, 1, t.TempDir(), smallMatch(t))

	require.ErrorIs(t, err, game.ErrConfiguration)
}
