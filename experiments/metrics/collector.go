package metrics

import (
	"sync/atomic"
	"time"

	"threetrios/game"
)

type SearchMetric struct {
	Strategy    string
	Duration    time.Duration
	Simulations int // Calls to NumCardsAbleToFlip and Simulate
	Candidates  int // Moves considered at the root
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	Flips  int
	SearchMetric
}

type GameMetric struct {
	MatchID        string
	StartingPlayer game.Player
	Winner         game.Player // game.None on a tie
	RedScore       int
	BlueScore      int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics for one move selection. It is safe for
// concurrent use by the goroutines of a single search.
type Collector interface {
	Start(strategy string)
	AddSimulation()
	SetCandidates(n int)
	Complete() SearchMetric
}

type collector struct {
	strategy    string
	startTime   time.Time
	simulations atomic.Int64
	candidates  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.simulations.Store(0)
	m.candidates.Store(0)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) SetCandidates(n int) {
	m.candidates.Store(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Duration:    time.Since(m.startTime),
		Simulations: int(m.simulations.Load()),
		Candidates:  int(m.candidates.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string) {}
func (m *dummyCollector) AddSimulation()        {}
func (m *dummyCollector) SetCandidates(n int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
