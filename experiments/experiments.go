package experiments

import (
	"fmt"
	"slices"
	"sort"

	"github.com/rs/zerolog/log"

	"threetrios/engine"
	"threetrios/experiments/metrics"
	"threetrios/game"
	"threetrios/searcher"
)

// NewMatch returns a started match for the given game number.
type NewMatch func(n int) (*game.GameState, error)

type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
}

var baseline = metrics.AgentConfig{ID: 0, Strategy: "flipmax"}

// presets pair every agent against the greedy baseline.
var presets = map[string][]metrics.AgentConfig{
	"strategies": {
		{ID: 1, Strategy: "defensive"},
		{ID: 2, Strategy: "corner"},
		{ID: 3, Strategy: "minimax", Depth: 2, Goroutines: 8},
		{ID: 4, Strategy: "minimax", Depth: 3, Goroutines: 8},
	},
	"depth": {
		{ID: 1, Strategy: "minimax", Depth: 1, Goroutines: 8},
		{ID: 2, Strategy: "minimax", Depth: 2, Goroutines: 8},
		{ID: 3, Strategy: "minimax", Depth: 3, Goroutines: 8},
		{ID: 4, Strategy: "minimax", Depth: 4, Goroutines: 8},
	},
	"parallelism": {
		{ID: 1, Strategy: "minimax", Depth: 3, Goroutines: 1},
		{ID: 2, Strategy: "minimax", Depth: 3, Goroutines: 4},
		{ID: 3, Strategy: "minimax", Depth: 3, Goroutines: 8},
		{ID: 4, Strategy: "minimax", Depth: 3, Goroutines: 16},
	},
}

// Names lists the available experiments.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named experiment with each config matched against the
// baseline.
func Lookup(name string) (Experiment, error) {
	configs, ok := presets[name]
	if !ok {
		return Experiment{}, fmt.Errorf("%w: unknown experiment %q", game.ErrConfiguration, name)
	}
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     name,
		Configs:  append(slices.Clone(configs), baseline),
		MatchUps: matchUps,
	}, nil
}

// Run plays games per match-up and writes the results under outDir. Agents
// swap colours every game so both get to move first. It returns the
// directory holding the CSV files.
func Run(exp Experiment, games int, outDir string, newMatch NewMatch) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchUp := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < games; i++ {
			red, blue := matchUp[0], matchUp[1]
			if i%2 == 1 {
				red, blue = blue, red
			}

			count++
			state, err := newMatch(count)
			if err != nil {
				return "", fmt.Errorf("game %d: %w", count, err)
			}
			winner, gameMetric, moveMetrics, err := runGame(state, red, blue)
			if err != nil {
				return "", fmt.Errorf("game %d: %w", count, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				RedAgent:   red.ID,
				BlueAgent:  blue.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	writer, err := metrics.NewWriter(outDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment results")

	return writer.Dir(), nil
}

func runGame(state *game.GameState, red, blue metrics.AgentConfig) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	redStrategy, err := createStrategy(red)
	if err != nil {
		return game.None, metrics.GameMetric{}, nil, err
	}
	blueStrategy, err := createStrategy(blue)
	if err != nil {
		return game.None, metrics.GameMetric{}, nil, err
	}

	e, err := engine.NewLocalEngine(state, redStrategy, blueStrategy, engine.WithMetrics())
	if err != nil {
		return game.None, metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

func createStrategy(config metrics.AgentConfig) (searcher.Strategy, error) {
	options := []searcher.Option{}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}

	return searcher.NewStrategy(config.Strategy, options...)
}
