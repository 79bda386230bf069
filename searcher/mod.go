package searcher

import (
	"fmt"
	"strings"

	"threetrios/game"
	"threetrios/meta"
)

// Strategy proposes a move for player p without changing s. It reports
// false only when p has no move: no empty cell or an empty hand.
type Strategy interface {
	Name() string
	SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool)
}

type Option func(c *settings)

type settings struct {
	depth      int
	goroutines int
	episodes   int
	cutoff     int
	seed       uint64
	evaluate   game.Evaluate
}

func defaults() settings {
	return settings{
		depth:      meta.DEFAULT_DEPTH,
		goroutines: meta.GO_ROUTINES,
		episodes:   meta.DEFAULT_EPISODES,
		cutoff:     meta.MAX_CUTOFF,
		evaluate:   game.EvaluateScore,
	}
}

func WithDepth(depth int) Option {
	return func(c *settings) {
		if depth > 0 {
			c.depth = depth
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(c *settings) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(c *settings) {
		if episodes > 0 {
			c.episodes = episodes
		}
	}
}

// WithCutoff bounds MCTS rollouts to depth plies.
func WithCutoff(depth int) Option {
	return func(c *settings) {
		if depth > 0 {
			c.cutoff = depth
		}
	}
}

// WithSeed seeds MCTS rollouts.
func WithSeed(seed uint64) Option {
	return func(c *settings) {
		c.seed = seed
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *settings) {
		if evaluate != nil {
			c.evaluate = evaluate
		}
	}
}

// candidate is a move plus the hand index of its card, kept for tie-breaks.
type candidate struct {
	move game.Move
	hand int
}

// candidates lists every (empty cell, hand card) pair for p in tie-break
// order: row, then column, then hand index.
func candidates(s game.ReadOnlyModel, p game.Player) []candidate {
	hand := s.Hand(p)
	if len(hand) == 0 {
		return nil
	}
	var out []candidate
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			cell, err := s.Cell(r, c)
			if err != nil || cell.Kind != game.Empty {
				continue
			}
			for i, card := range hand {
				out = append(out, candidate{move: game.Move{Card: card, Row: r, Col: c}, hand: i})
			}
		}
	}
	return out
}

// pick returns the candidate with the best score. Earlier candidates win
// ties, which gives the row, column, hand index order.
func pick(cands []candidate, scores []int, better func(a, b int) bool) (game.Move, bool) {
	best := -1
	for i := range cands {
		if best < 0 || better(scores[i], scores[best]) {
			best = i
		}
	}
	if best < 0 {
		return game.Move{}, false
	}
	return cands[best].move, true
}

func higher(a, b int) bool { return a > b }
func lower(a, b int) bool  { return a < b }

// NewStrategy builds a strategy from its configuration name.
func NewStrategy(name string, options ...Option) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flipmax", "max-flips":
		return NewFlipMaximizer(), nil
	case "defensive", "least-exposed":
		return NewLeastExposed(), nil
	case "corner":
		return NewCornerSeeker(), nil
	case "minimax":
		return NewMinimax(options...), nil
	case "mcts":
		return NewMCTS(options...), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", game.ErrConfiguration, name)
	}
}
