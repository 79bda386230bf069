package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"threetrios/game"
)

// ParseGrid reads the grid format: a "ROWS COLS" header followed by ROWS
// lines of COLS characters, X for a hole and C for a card cell.
func ParseGrid(r io.Reader) (*game.Grid, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: grid file is empty", game.ErrConfiguration)
	}

	header := strings.Fields(lines[0])
	if len(header) != 2 {
		return nil, fmt.Errorf("%w: grid header must be \"ROWS COLS\", got %q", game.ErrConfiguration, lines[0])
	}
	rows, err := strconv.Atoi(header[0])
	if err != nil || rows < 1 {
		return nil, fmt.Errorf("%w: bad row count %q", game.ErrConfiguration, header[0])
	}
	cols, err := strconv.Atoi(header[1])
	if err != nil || cols < 1 {
		return nil, fmt.Errorf("%w: bad column count %q", game.ErrConfiguration, header[1])
	}
	if len(lines)-1 != rows {
		return nil, fmt.Errorf("%w: grid declares %d rows but has %d", game.ErrConfiguration, rows, len(lines)-1)
	}

	holes := make([][]bool, rows)
	for r, line := range lines[1:] {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: grid row %d has %d cells, want %d", game.ErrConfiguration, r, len(line), cols)
		}
		holes[r] = make([]bool, cols)
		for c, ch := range line {
			switch ch {
			case 'X', 'x':
				holes[r][c] = true
			case 'C', 'c':
			default:
				return nil, fmt.Errorf("%w: grid cell (%d,%d) is %q, want X or C", game.ErrConfiguration, r, c, ch)
			}
		}
	}
	return game.NewGrid(holes)
}

// ParseCards reads one card per line as "NAME N S E W". Attack values are
// 1-9 or A for 10.
func ParseCards(r io.Reader) ([]game.Card, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	cards := make([]game.Card, 0, len(lines))
	seen := map[string]bool{}
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: card line %d must be \"NAME N S E W\", got %q", game.ErrConfiguration, i+1, line)
		}
		var attack [4]int
		for d := range attack {
			v, err := game.ParseAttack(fields[d+1])
			if err != nil {
				return nil, fmt.Errorf("card line %d: %w", i+1, err)
			}
			attack[d] = v
		}
		card, err := game.NewCard(fields[0], attack[0], attack[1], attack[2], attack[3])
		if err != nil {
			return nil, fmt.Errorf("card line %d: %w", i+1, err)
		}
		if seen[card.Name] {
			return nil, fmt.Errorf("%w: duplicate card name %q", game.ErrConfiguration, card.Name)
		}
		seen[card.Name] = true
		cards = append(cards, card)
	}
	return cards, nil
}

func LoadGrid(path string) (*game.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseGrid(f)
}

func LoadCards(path string) ([]game.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCards(f)
}

// readLines returns the trimmed, non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
