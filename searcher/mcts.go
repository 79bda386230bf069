package searcher

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"threetrios/game"
)

// Rollout rewards from the point of view of one player. A losing reward
// also serves as the virtual loss of a node being searched.
const (
	Win  = 1.0
	Tie  = 0.0
	Loss = -Win
)

// MCTS is a tree-parallel Monte Carlo tree search with virtual loss. With a
// single goroutine and a fixed seed it is deterministic.
type MCTS struct {
	goroutines int
	episodes   int
	cutoff     int
	seed       uint64
	evaluate   game.Evaluate
}

func NewMCTS(options ...Option) *MCTS {
	c := defaults()
	for _, option := range options {
		option(&c)
	}
	if c.episodes <= 0 {
		panic("Must specify search episodes")
	}
	return &MCTS{
		goroutines: c.goroutines,
		episodes:   c.episodes,
		cutoff:     c.cutoff,
		seed:       c.seed,
		evaluate:   c.evaluate,
	}
}

func (m *MCTS) Name() string { return "mcts" }

// SelectMove searches from the current position. Like the other lookahead
// strategies it needs p to be the player to move and falls back to
// maximizing flips otherwise.
func (m *MCTS) SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool) {
	if s.CurrentPlayer() != p {
		return NewFlipMaximizer().SelectMove(p, s)
	}
	root := newDecision(nil, game.None, s)
	if len(root.moves) == 0 {
		return game.Move{}, false
	}

	m.iterate(root, s)
	return root.bestMove()
}

func (m *MCTS) iterate(root *decision, state game.ReadOnlyModel) {
	task := make(chan int, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(m.seed + uint64(worker)))
			for range task {
				if err := m.simulate(root, state, rng); err != nil {
					log.Warn().Err(err).Msg("mcts episode abandoned")
				}
			}
		}(i)
	}

	wg.Wait()
}

func (m *MCTS) simulate(root *decision, state game.ReadOnlyModel, rng *rand.Rand) error {
	node, state, err := selectThenExpand(root, state)
	if err != nil {
		return err
	}
	reward := rollout(state, m.cutoff, m.evaluate, rng)
	backup(node, reward)
	return nil
}

func selectThenExpand(root *decision, state game.ReadOnlyModel) (*decision, game.ReadOnlyModel, error) {
	parent := root
	child, state, expanded, err := parent.SelectOrExpand(state)
	for err == nil && !expanded && child != parent {
		parent = child
		child, state, expanded, err = parent.SelectOrExpand(state)
	}
	if err != nil {
		// Settle the virtual losses on the path as a lost episode
		backup(parent, func(game.Player) float64 { return Loss })
		return nil, nil, err
	}
	return child, state, nil
}

// rollout plays random moves until the game ends or cutoff plies have been
// played. At the cutoff the evaluation function picks the likely winner.
func rollout(state game.ReadOnlyModel, cutoff int, evaluate game.Evaluate, rng *rand.Rand) func(game.Player) float64 {
	for depth := 0; !state.IsGameOver() && depth < cutoff; depth++ {
		cands := candidates(state, state.CurrentPlayer())
		if len(cands) == 0 {
			break
		}
		next, _, err := state.Simulate(cands[rng.Intn(len(cands))].move)
		if err != nil {
			break
		}
		state = next
	}

	var leader game.Player
	switch v := evaluate(state, game.Red); {
	case v > 0:
		leader = game.Red
	case v < 0:
		leader = game.Blue
	}
	return func(p game.Player) float64 {
		switch {
		case leader == game.None || p == game.None:
			return Tie
		case p == leader:
			return Win
		default:
			return Loss
		}
	}
}

func backup(node *decision, reward func(game.Player) float64) {
	for node != nil {
		node = node.Backup(reward)
	}
}
