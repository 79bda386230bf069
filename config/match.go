package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"threetrios/game"
	"threetrios/meta"
	"threetrios/searcher"
)

// MatchConfig is the top-level YAML structure of a match file.
type MatchConfig struct {
	Grid    string         `yaml:"grid"`
	Cards   string         `yaml:"cards"`
	Rules   []string       `yaml:"rules"`
	Shuffle bool           `yaml:"shuffle"`
	Seed    uint64         `yaml:"seed"`
	Red     StrategyConfig `yaml:"red"`
	Blue    StrategyConfig `yaml:"blue"`
}

// StrategyConfig names a strategy and its settings. A "combined" strategy
// names its two parts.
type StrategyConfig struct {
	Strategy   string          `yaml:"strategy"`
	Depth      int             `yaml:"depth"`
	Goroutines int             `yaml:"goroutines"`
	Primary    *StrategyConfig `yaml:"primary"`
	Secondary  *StrategyConfig `yaml:"secondary"`
}

// Match is a ready-to-run configuration.
type Match struct {
	State *game.GameState
	Red   searcher.Strategy
	Blue  searcher.Strategy
}

// LoadMatch reads a YAML match file. Relative grid and card paths are
// resolved against the file's directory.
func LoadMatch(path string) (*MatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseMatch(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if cfg.Grid != "" && !filepath.IsAbs(cfg.Grid) {
		cfg.Grid = filepath.Join(dir, cfg.Grid)
	}
	if cfg.Cards != "" && !filepath.IsAbs(cfg.Cards) {
		cfg.Cards = filepath.Join(dir, cfg.Cards)
	}
	return cfg, nil
}

// ParseMatch decodes a match file and fills in defaults.
func ParseMatch(data []byte) (*MatchConfig, error) {
	var cfg MatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse match YAML: %v", game.ErrConfiguration, err)
	}

	if cfg.Grid == "" {
		return nil, fmt.Errorf("%w: match file names no grid", game.ErrConfiguration)
	}
	if cfg.Cards == "" {
		return nil, fmt.Errorf("%w: match file names no cards", game.ErrConfiguration)
	}
	if cfg.Red.Strategy == "" {
		cfg.Red.Strategy = "flipmax"
	}
	if cfg.Blue.Strategy == "" {
		cfg.Blue.Strategy = "flipmax"
	}
	return &cfg, nil
}

// Rule combines the configured rules. No rules means Normal.
func (c *MatchConfig) Rule() (game.Rule, error) {
	return game.ParseRules(c.Rules)
}

// NewState loads the grid and cards and starts a match. A non-zero seed
// offset changes the shuffle between games of an experiment.
func (c *MatchConfig) NewState(seedOffset uint64, listeners ...game.StatusListener) (*game.GameState, error) {
	rule, err := c.Rule()
	if err != nil {
		return nil, err
	}
	grid, err := LoadGrid(c.Grid)
	if err != nil {
		return nil, fmt.Errorf("load grid: %w", err)
	}
	deck, err := LoadCards(c.Cards)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	options := []game.Option{}
	if c.Seed != 0 || seedOffset != 0 {
		options = append(options, game.WithSeed(c.Seed+seedOffset))
	}
	for _, l := range listeners {
		options = append(options, game.WithListener(l))
	}

	state := game.NewGameState(rule, options...)
	if err := state.StartGame(grid, deck, c.Shuffle); err != nil {
		return nil, err
	}
	return state, nil
}

// Build starts the configured match and creates both strategies.
func (c *MatchConfig) Build(listeners ...game.StatusListener) (*Match, error) {
	red, err := c.Red.New()
	if err != nil {
		return nil, fmt.Errorf("red: %w", err)
	}
	blue, err := c.Blue.New()
	if err != nil {
		return nil, fmt.Errorf("blue: %w", err)
	}
	state, err := c.NewState(0, listeners...)
	if err != nil {
		return nil, err
	}
	return &Match{State: state, Red: red, Blue: blue}, nil
}

// New creates the configured strategy.
func (s StrategyConfig) New() (searcher.Strategy, error) {
	if strings.EqualFold(s.Strategy, "combined") {
		if s.Primary == nil || s.Secondary == nil {
			return nil, fmt.Errorf("%w: combined strategy needs a primary and a secondary", game.ErrConfiguration)
		}
		primary, err := s.Primary.New()
		if err != nil {
			return nil, err
		}
		secondary, err := s.Secondary.New()
		if err != nil {
			return nil, err
		}
		return searcher.NewCombined(primary, secondary), nil
	}

	depth := s.Depth
	if depth == 0 {
		depth = meta.DEFAULT_DEPTH
	}
	goroutines := s.Goroutines
	if goroutines == 0 {
		goroutines = meta.GO_ROUTINES
	}
	if depth < 0 || goroutines < 0 {
		return nil, fmt.Errorf("%w: depth and goroutines must be positive", game.ErrConfiguration)
	}
	return searcher.NewStrategy(s.Strategy, searcher.WithDepth(depth), searcher.WithGoroutines(goroutines))
}
