package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Resolve runs the battle started by the card at origin. Opposing neighbors
// that lose under rule are flipped to the origin's owner, and every flipped
// card battles its own neighbors in turn, breadth first. It returns the
// flipped positions in flip order.
func Resolve(g *Grid, origin Position, rule Rule) ([]Position, error) {
	if !g.InBounds(origin.Row, origin.Col) {
		return nil, fmt.Errorf("%w: battle origin (%d,%d)", ErrOutOfBounds, origin.Row, origin.Col)
	}
	start := g.at(origin)
	if start.Kind != Occupied {
		return nil, fmt.Errorf("%w: battle origin (%d,%d) holds no card", ErrIllegalState, origin.Row, origin.Col)
	}
	owner := start.Owner

	var flipped []Position
	visited := make(map[Position]bool)
	queue := []Position{origin}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		if g.at(current).Kind != Occupied {
			continue
		}

		for _, d := range Directions {
			next := current.Step(d)
			if !g.InBounds(next.Row, next.Col) {
				continue
			}
			neighbor := g.at(next)
			if neighbor.Kind != Occupied || neighbor.Owner == owner {
				continue
			}
			if rule.ShouldFlip(g, current, d) {
				g.flip(next, owner)
				flipped = append(flipped, next)
				queue = append(queue, next)
			}
		}
	}

	if len(flipped) > 0 {
		log.Debug().
			Str("owner", owner.String()).
			Int("row", origin.Row).
			Int("col", origin.Col).
			Int("flips", len(flipped)).
			Msg("battle resolved")
	}
	return flipped, nil
}
