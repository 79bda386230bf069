package searcher

import (
	"math"
	"sync"

	"threetrios/game"
)

// decision is a search tree node. rewards are kept from the point of view
// of mover, the player whose move led here.
type decision struct {
	sync.RWMutex
	parent   *decision
	mover    game.Player
	moves    []game.Move
	children []*decision
	rewards  float64
	visits   float64
}

// exploration is c^2 in the UCT bound.
const exploration = 2.0

// uctScore is q/n + sqrt(c^2*ln(N)/n) for a child with reward sum q over n
// visits under a parent with N visits.
func uctScore(q, n, N float64) float64 {
	if n == 0 || N == 0 {
		panic("UCT needs visited nodes")
	}
	return q/n + math.Sqrt(exploration*math.Log(N)/n)
}

func newDecision(parent *decision, mover game.Player, state game.ReadOnlyModel) *decision {
	var moves []game.Move
	if !state.IsGameOver() {
		for _, c := range candidates(state, state.CurrentPlayer()) {
			moves = append(moves, c.move)
		}
	}
	return &decision{
		parent:   parent,
		mover:    mover,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level. It adds the next untried move as a new
// child when there is one, otherwise it selects the child with the highest
// UCT value. Terminal nodes return themselves.
func (d *decision) SelectOrExpand(state game.ReadOnlyModel) (*decision, game.ReadOnlyModel, bool, error) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false, nil
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		next, _, err := state.Simulate(move)
		if err != nil {
			return nil, nil, false, err
		}
		child := newDecision(d, state.CurrentPlayer(), next)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, true, nil
	}

	// Fully expanded node
	ith := d.pickChild()
	next, _, err := state.Simulate(d.moves[ith])
	if err != nil {
		return nil, nil, false, err
	}
	child := d.children[ith]
	child.applyLoss()
	return child, next, false, nil
}

func (d *decision) pickChild() int {
	// Parent visits lag behind while other goroutines are still rolling out
	parentVisits := math.Max(d.visits, 1)

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(parentVisits)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(parentVisits float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return uctScore(d.rewards, d.visits, parentVisits)
}

// Backup records one rollout outcome and returns the parent.
func (d *decision) Backup(reward func(game.Player) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root nodes carry a virtual loss
		d.rewards -= Loss
		d.visits--
	}

	d.rewards += reward(d.mover)
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// bestMove is the most visited move. Earlier moves win ties.
func (d *decision) bestMove() (game.Move, bool) {
	d.RLock()
	defer d.RUnlock()

	best := -1
	maxVisits := 0.0
	for i, child := range d.children {
		if v := child.Visits(); best < 0 || v > maxVisits {
			best = i
			maxVisits = v
		}
	}
	if best < 0 {
		return game.Move{}, false
	}
	return d.moves[best], true
}
