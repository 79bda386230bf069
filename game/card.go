package game

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinAttack = 1
	MaxAttack = 10
)

// Card is an immutable named tuple of attack values, one per direction.
// Cards compare equal when name and values match.
type Card struct {
	Name   string
	Attack [4]int // Indexed by Direction
}

// NewCard builds a card from its north, south, east and west values.
func NewCard(name string, north, south, east, west int) (Card, error) {
	c := Card{Name: name, Attack: [4]int{north, south, east, west}}
	for _, d := range Directions {
		if v := c.Attack[d]; v < MinAttack || v > MaxAttack {
			return Card{}, fmt.Errorf("%w: card %q has %s value %d outside [%d,%d]",
				ErrConfiguration, name, d, v, MinAttack, MaxAttack)
		}
	}
	return c, nil
}

// Value returns the attack value the card shows in direction d.
func (c Card) Value(d Direction) int {
	return c.Attack[d]
}

// String renders the card as "NAME N S E W" with 10 written as A.
func (c Card) String() string {
	parts := []string{c.Name}
	for _, d := range Directions {
		parts = append(parts, FormatAttack(c.Attack[d]))
	}
	return strings.Join(parts, " ")
}

func FormatAttack(v int) string {
	if v == MaxAttack {
		return "A"
	}
	return strconv.Itoa(v)
}

// ParseAttack reads a single attack value, accepting A for 10.
func ParseAttack(s string) (int, error) {
	if strings.EqualFold(s, "A") {
		return MaxAttack, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: attack value %q: %v", ErrConfiguration, s, err)
	}
	if v < MinAttack || v >= MaxAttack {
		return 0, fmt.Errorf("%w: attack value %q outside [1,9] or A", ErrConfiguration, s)
	}
	return v, nil
}
