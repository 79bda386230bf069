// meta/meta.go
package meta

// GO_ROUTINES bounds the goroutines of one search.
const GO_ROUTINES = 8

// DEFAULT_DEPTH is the minimax search depth in plies.
const DEFAULT_DEPTH = 3

// MAX_TURNS caps a local match. A match never needs more turns than the
// grid has playable cells.
const MAX_TURNS = 1000

// NUM_GAMES is the number of games per experiment match-up.
const NUM_GAMES = 10

// DEFAULT_EPISODES is the number of MCTS simulations per move.
const DEFAULT_EPISODES = 2000

// MAX_CUTOFF is the default rollout depth, deep enough for full playouts on
// any practical grid.
const MAX_CUTOFF = 1000
