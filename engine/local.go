package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"threetrios/experiments/metrics"
	"threetrios/game"
	"threetrios/meta"
	"threetrios/searcher"
)

var _ Engine = (*LocalEngine)(nil)

// LocalEngine plays two strategies against each other in process.
type LocalEngine struct {
	ID         string
	State      *game.GameState
	strategies map[game.Player]searcher.Strategy
	maxTurns   int
	collect    bool
}

type Option func(e *LocalEngine)

// WithMaxTurns overrides meta.MAX_TURNS.
func WithMaxTurns(n int) Option {
	return func(e *LocalEngine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithMetrics records per-move search statistics.
func WithMetrics() Option {
	return func(e *LocalEngine) {
		e.collect = true
	}
}

// NewLocalEngine wraps a started match. Red always moves first.
func NewLocalEngine(state *game.GameState, red, blue searcher.Strategy, options ...Option) (*LocalEngine, error) {
	if state == nil || state.Phase() != game.InProgress {
		return nil, fmt.Errorf("%w: match must be started before it is run", game.ErrIllegalState)
	}
	if red == nil || blue == nil {
		return nil, fmt.Errorf("%w: both players need a strategy", game.ErrConfiguration)
	}

	e := &LocalEngine{
		ID:    uuid.NewString(),
		State: state,
		strategies: map[game.Player]searcher.Strategy{
			game.Red:  red,
			game.Blue: blue,
		},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run executes the game loop until the grid is full.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		MatchID:        e.ID,
		StartingPlayer: e.State.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().
		Str("match", e.ID).
		Str("red", e.strategies[game.Red].Name()).
		Str("blue", e.strategies[game.Blue].Name()).
		Msgf("%s is starting", gameMetric.StartingPlayer)

	turn := 1
	for !e.State.IsGameOver() && turn <= e.maxTurns {
		p := e.State.CurrentPlayer()
		st := e.strategies[p]

		collector := metrics.NewDummyCollector()
		if e.collect {
			collector = metrics.NewCollector()
		}
		move, ok, searchMetric := searcher.Measure(st, p, e.State, collector)
		if !ok {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("%w: %s has no move on turn %d", game.ErrIllegalState, p, turn)
		}

		flipped, err := e.State.PlayCard(p, move.Card, move.Row, move.Col)
		if err != nil {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("%s proposed %s at (%d,%d): %w", st.Name(), move.Card.Name, move.Row, move.Col, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       p,
			Move:         move,
			Flips:        len(flipped),
			SearchMetric: searchMetric,
		})
		log.Debug().
			Str("match", e.ID).
			Int("turn", turn).
			Str("player", p.String()).
			Int("flips", len(flipped)).
			Msg("turn played")
		turn++
	}

	if !e.State.IsGameOver() {
		log.Warn().Str("match", e.ID).Msgf("stopped after %d turns without a full grid", e.maxTurns)
	}

	winner := e.State.Winner()
	gameMetric.Winner = winner
	gameMetric.RedScore = e.State.Score(game.Red)
	gameMetric.BlueScore = e.State.Score(game.Blue)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().
		Str("match", e.ID).
		Int("red", gameMetric.RedScore).
		Int("blue", gameMetric.BlueScore).
		Msgf("match finished, winner: %s", winner)

	return winner, gameMetric, moveMetrics, nil
}
