package game

import (
	"fmt"
	"strings"
)

type CellKind int

const (
	Hole CellKind = iota
	Empty
	Occupied
)

// Cell is one grid slot. Card and Owner are only meaningful when Kind is
// Occupied.
type Cell struct {
	Kind  CellKind
	Card  Card
	Owner Player
}

// Grid is a fixed-size matrix of cells stored row-major in a flat slice.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid builds a grid from a hole mask: holes[r][c] marks a hole, anything
// else starts Empty. Every row must have the same width.
func NewGrid(holes [][]bool) (*Grid, error) {
	if len(holes) == 0 || len(holes[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and column", ErrConfiguration)
	}
	rows, cols := len(holes), len(holes[0])
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	for r, row := range holes {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrConfiguration, r, len(row), cols)
		}
		for c, hole := range row {
			if !hole {
				g.cells[r*cols+c].Kind = Empty
			}
		}
	}
	return g, nil
}

// NewOpenGrid builds a rows x cols grid without holes.
func NewOpenGrid(rows, cols int) (*Grid, error) {
	holes := make([][]bool, rows)
	for r := range holes {
		holes[r] = make([]bool, cols)
	}
	return NewGrid(holes)
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// Cell returns a copy of the cell at (row, col).
func (g *Grid) Cell(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[g.index(row, col)], nil
}

// at reads a cell the caller already bounds-checked.
func (g *Grid) at(p Position) Cell {
	return g.cells[g.index(p.Row, p.Col)]
}

// Place puts card on an Empty cell for owner. It reports false, without
// changing anything, for holes, occupied cells and out of bounds coordinates.
func (g *Grid) Place(row, col int, card Card, owner Player) bool {
	if !g.InBounds(row, col) {
		return false
	}
	cell := &g.cells[g.index(row, col)]
	if cell.Kind != Empty {
		return false
	}
	*cell = Cell{Kind: Occupied, Card: card, Owner: owner}
	return true
}

// flip hands an occupied cell to owner. The card stays.
func (g *Grid) flip(p Position, owner Player) {
	g.cells[g.index(p.Row, p.Col)].Owner = owner
}

func (g *Grid) IsFull() bool {
	return g.CountEmpty() == 0
}

func (g *Grid) CountEmpty() int {
	return g.count(func(c Cell) bool { return c.Kind == Empty })
}

// CountPlayable counts the non-hole cells.
func (g *Grid) CountPlayable() int {
	return g.count(func(c Cell) bool { return c.Kind != Hole })
}

func (g *Grid) CountOwned(p Player) int {
	return g.count(func(c Cell) bool { return c.Kind == Occupied && c.Owner == p })
}

func (g *Grid) count(match func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if match(c) {
			n++
		}
	}
	return n
}

// EmptyCells lists the playable empty positions in row-major order.
func (g *Grid) EmptyCells() []Position {
	var out []Position
	for i, c := range g.cells {
		if c.Kind == Empty {
			out = append(out, Position{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}

// Clone returns an independent copy. Cards are values and are shared freely.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Render draws the grid row by row: X for holes, _ for empty cells and the
// owner's initial otherwise. Each row ends with a newline.
func (g *Grid) Render() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		symbols := make([]string, g.cols)
		for c := 0; c < g.cols; c++ {
			symbols[c] = symbol(g.cells[g.index(r, c)])
		}
		sb.WriteString(strings.Join(symbols, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func symbol(c Cell) string {
	switch c.Kind {
	case Hole:
		return "X"
	case Empty:
		return "_"
	default:
		return strings.ToUpper(c.Owner.String()[:1])
	}
}
