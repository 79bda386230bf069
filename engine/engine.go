package engine

import (
	"threetrios/experiments/metrics"
	"threetrios/game"
)

type Engine interface {
	// Run plays the match until the grid is full or the turn cap is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
