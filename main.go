package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"threetrios/config"
	"threetrios/engine"
	"threetrios/experiments"
	"threetrios/game"
	"threetrios/meta"
)

func main() {
	configPath := flag.String("config", "configs/match.yaml", "Match file (YAML)")
	experiment := flag.String("experiment", "", "Run an experiment instead of one match: "+strings.Join(experiments.Names(), ", "))
	numGames := flag.Int("games", meta.NUM_GAMES, "Games per experiment match-up")
	outDir := flag.String("out", "results", "Directory for experiment CSV files")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.LoadMatch(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("failed to load match config")
	}

	if *experiment != "" {
		runExperiment(cfg, *experiment, *numGames, *outDir)
		return
	}
	runMatch(cfg)
}

func runMatch(cfg *config.MatchConfig) {
	listener := game.ListenerFunc(func(e game.Event) {
		if e.Type == game.EventInvalidMove {
			log.Warn().Err(e.Err).Str("player", e.Player.String()).Msg("move rejected")
		}
	})
	m, err := cfg.Build(listener)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up match")
	}

	e, err := engine.NewLocalEngine(m.State, m.Red, m.Blue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create engine")
	}
	winner, gameMetric, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("match aborted")
	}

	fmt.Print(m.State.Render())
	if winner == game.None {
		fmt.Printf("Tie! red %d, blue %d\n", gameMetric.RedScore, gameMetric.BlueScore)
		return
	}
	fmt.Printf("Winner: %s (red %d, blue %d)\n", winner, gameMetric.RedScore, gameMetric.BlueScore)
}

func runExperiment(cfg *config.MatchConfig, name string, games int, outDir string) {
	exp, err := experiments.Lookup(name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to find experiment")
	}
	dir, err := experiments.Run(exp, games, outDir, func(n int) (*game.GameState, error) {
		return cfg.NewState(uint64(n))
	})
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	fmt.Printf("Results written to %s\n", dir)
}
