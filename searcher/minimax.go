package searcher

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"threetrios/game"
)

// Minimax searches a fixed number of plies, alternating the mover's best
// and the opponent's best reply. A ply adds the mover's flips and subtracts
// the opponent's. Leaves are scored with the evaluation function.
type Minimax struct {
	depth      int
	goroutines int
	evaluate   game.Evaluate
}

func NewMinimax(options ...Option) *Minimax {
	c := defaults()
	for _, option := range options {
		option(&c)
	}
	if c.depth < 1 {
		panic("minimax depth must be at least 1")
	}
	return &Minimax{depth: c.depth, goroutines: c.goroutines, evaluate: c.evaluate}
}

func (m *Minimax) Name() string { return "minimax" }

func (m *Minimax) Depth() int { return m.depth }

type memoKey struct {
	hash       game.StateHash
	depth      int
	maximizing bool
}

// table is a transposition table shared by the goroutines of one search.
type table struct {
	sync.Mutex
	values map[memoKey]int
}

func (t *table) get(k memoKey) (int, bool) {
	t.Lock()
	defer t.Unlock()
	v, ok := t.values[k]
	return v, ok
}

func (t *table) put(k memoKey, v int) {
	t.Lock()
	defer t.Unlock()
	t.values[k] = v
}

// SelectMove searches from p's turn. When p is not the player to move the
// search cannot play for p and it falls back to maximizing flips.
func (m *Minimax) SelectMove(p game.Player, s game.ReadOnlyModel) (game.Move, bool) {
	if s.CurrentPlayer() != p {
		return NewFlipMaximizer().SelectMove(p, s)
	}
	cands := candidates(s, p)
	if len(cands) == 0 {
		return game.Move{}, false
	}

	memo := &table{values: make(map[memoKey]int)}
	scores := make([]int, len(cands))

	var g errgroup.Group
	g.SetLimit(m.goroutines)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			next, flips, err := s.Simulate(c.move)
			if err != nil {
				scores[i] = math.MinInt
				return fmt.Errorf("simulate %v: %w", c.move, err)
			}
			scores[i] = flips + m.search(next, p, m.depth-1, false, memo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Rejected candidates keep the lowest score; the rest are still ranked.
		log.Warn().Err(err).Msg("minimax candidate rejected")
		if !slices.ContainsFunc(scores, func(v int) bool { return v != math.MinInt }) {
			return game.Move{}, false
		}
	}

	return pick(cands, scores, higher)
}

func (m *Minimax) search(s game.ReadOnlyModel, mover game.Player, depth int, maximizing bool, memo *table) int {
	if depth == 0 || s.IsGameOver() {
		return m.evaluate(s, mover)
	}
	key := memoKey{hash: s.Hash(), depth: depth, maximizing: maximizing}
	if v, ok := memo.get(key); ok {
		return v
	}

	cands := candidates(s, s.CurrentPlayer())
	if len(cands) == 0 {
		return m.evaluate(s, mover)
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	searched := false
	for _, c := range cands {
		next, flips, err := s.Simulate(c.move)
		if err != nil {
			continue
		}
		searched = true
		v := m.search(next, mover, depth-1, !maximizing, memo)
		if maximizing {
			best = max(best, v+flips)
		} else {
			best = min(best, v-flips)
		}
	}
	if !searched {
		best = m.evaluate(s, mover)
	}

	memo.put(key, best)
	return best
}
