package searcher

import (
	"github.com/rs/zerolog/log"

	"threetrios/experiments/metrics"
	"threetrios/game"
)

// countingModel counts every simulation a strategy asks for.
type countingModel struct {
	game.ReadOnlyModel
	collector metrics.Collector
}

func (c countingModel) NumCardsAbleToFlip(p game.Player, card game.Card, row, col int) int {
	c.collector.AddSimulation()
	return c.ReadOnlyModel.NumCardsAbleToFlip(p, card, row, col)
}

func (c countingModel) Simulate(m game.Move) (game.ReadOnlyModel, int, error) {
	c.collector.AddSimulation()
	next, flips, err := c.ReadOnlyModel.Simulate(m)
	if err != nil {
		return nil, 0, err
	}
	return countingModel{ReadOnlyModel: next, collector: c.collector}, flips, nil
}

// Measure runs st for p and reports how much work the selection took.
func Measure(st Strategy, p game.Player, s game.ReadOnlyModel, collector metrics.Collector) (game.Move, bool, metrics.SearchMetric) {
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	collector.Start(st.Name())
	collector.SetCandidates(len(candidates(s, p)))

	move, ok := st.SelectMove(p, countingModel{ReadOnlyModel: s, collector: collector})
	metric := collector.Complete()

	if ok {
		log.Debug().
			Str("strategy", st.Name()).
			Str("player", p.String()).
			Str("card", move.Card.Name).
			Int("row", move.Row).
			Int("col", move.Col).
			Int("simulations", metric.Simulations).
			Msg("move selected")
	}
	return move, ok, metric
}
