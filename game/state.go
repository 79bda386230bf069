package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Over
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	default:
		return "over"
	}
}

type Option func(gs *GameState)

// WithSeed makes deck shuffling reproducible.
func WithSeed(seed uint64) Option {
	return func(gs *GameState) {
		gs.rng = rand.New(rand.NewSource(seed))
	}
}

func WithListener(l StatusListener) Option {
	return func(gs *GameState) {
		if l != nil {
			gs.listeners = append(gs.listeners, l)
		}
	}
}

// GameState owns the grid and both hands of one match and enforces turn
// order. Only PlayCard changes it once the match has started.
type GameState struct {
	grid      *Grid
	hands     [3][]Card // Indexed by Player, None unused
	current   Player
	phase     Phase
	rule      Rule
	rng       *rand.Rand
	listeners []StatusListener
}

// NewGameState returns an unstarted match played under rule.
func NewGameState(rule Rule, options ...Option) *GameState {
	gs := &GameState{rule: rule, phase: NotStarted}
	for _, option := range options {
		option(gs)
	}
	return gs
}

// StartGame deals the deck and hands the first turn to Red. The grid is
// copied; later changes to the caller's grid are not seen. With N playable
// cells, N must be odd and the deck must hold at least N+1 cards. Each
// player is dealt (N+1)/2 cards, Red first.
func (gs *GameState) StartGame(grid *Grid, deck []Card, shuffle bool) error {
	if gs.phase != NotStarted {
		return fmt.Errorf("%w: game already started", ErrIllegalState)
	}
	if grid == nil {
		return fmt.Errorf("%w: nil grid", ErrConfiguration)
	}
	playable := grid.CountPlayable()
	if playable%2 == 0 {
		return fmt.Errorf("%w: %d playable cells, must be odd", ErrConfiguration, playable)
	}
	if grid.CountEmpty() != playable {
		return fmt.Errorf("%w: grid already holds cards", ErrConfiguration)
	}
	if len(deck) < playable+1 {
		return fmt.Errorf("%w: deck has %d cards, need at least %d", ErrConfiguration, len(deck), playable+1)
	}

	cards := make([]Card, len(deck))
	copy(cards, deck)
	if shuffle {
		if gs.rng == nil {
			gs.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
		}
		gs.rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}

	handSize := (playable + 1) / 2
	gs.hands[Red] = slices.Clone(cards[:handSize])
	gs.hands[Blue] = slices.Clone(cards[handSize : 2*handSize])
	gs.grid = grid.Clone()
	gs.current = Red
	gs.phase = InProgress

	log.Debug().
		Int("rows", grid.Rows()).
		Int("cols", grid.Cols()).
		Int("handSize", handSize).
		Str("rule", gs.rule.String()).
		Msg("game started")

	gs.notify(Event{Type: EventTurnChanged, Player: Red})
	return nil
}

// Copy returns an independent copy of the state. Listeners are not copied,
// so nothing played on the copy is published.
func (gs *GameState) Copy() *GameState {
	var grid *Grid
	if gs.grid != nil {
		grid = gs.grid.Clone()
	}
	var hands [3][]Card
	for i, hand := range gs.hands {
		hands[i] = slices.Clone(hand)
	}
	return &GameState{
		grid:    grid,
		hands:   hands,
		current: gs.current,
		phase:   gs.phase,
		rule:    gs.rule, // Rules are immutable
	}
}

func (gs *GameState) AddStatusListener(l StatusListener) {
	if l != nil {
		gs.listeners = append(gs.listeners, l)
	}
}

func (gs *GameState) notify(e Event) {
	for _, l := range gs.listeners {
		l.OnStatus(e)
	}
}

// PlayCard places card from p's hand at (row, col), resolves the battle and
// passes the turn. It returns the positions flipped by the battle. A
// rejected move wraps ErrIllegalMove and leaves the state unchanged.
func (gs *GameState) PlayCard(p Player, card Card, row, col int) ([]Position, error) {
	flipped, err := gs.play(p, card, row, col)
	if err != nil {
		log.Debug().Err(err).Str("player", p.String()).Msg("move rejected")
		gs.notify(Event{Type: EventInvalidMove, Player: p, Err: err})
		return nil, err
	}

	gs.notify(Event{Type: EventModelUpdated, Player: p, Flipped: flipped})
	if gs.phase == Over {
		gs.notify(Event{Type: EventGameOver, Winner: gs.Winner()})
	} else {
		gs.notify(Event{Type: EventTurnChanged, Player: gs.current})
	}
	return flipped, nil
}

func (gs *GameState) play(p Player, card Card, row, col int) ([]Position, error) {
	if err := gs.checkMove(p, card, row, col); err != nil {
		return nil, err
	}

	gs.grid.Place(row, col, card, p)
	idx := slices.Index(gs.hands[p], card)
	gs.hands[p] = slices.Delete(slices.Clone(gs.hands[p]), idx, idx+1)

	flipped, err := Resolve(gs.grid, Position{Row: row, Col: col}, gs.rule)
	if err != nil {
		// The cell was just filled, so this cannot happen for a valid grid.
		return nil, err
	}

	gs.current = p.Opponent()
	if gs.grid.IsFull() {
		gs.phase = Over
	}
	return flipped, nil
}

func (gs *GameState) checkMove(p Player, card Card, row, col int) error {
	switch gs.phase {
	case NotStarted:
		return fmt.Errorf("%w: game has not started", ErrIllegalMove)
	case Over:
		return fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	if p != gs.current {
		return fmt.Errorf("%w: it is %s's turn, not %s's", ErrIllegalMove, gs.current, p)
	}
	if !slices.Contains(gs.hands[p], card) {
		return fmt.Errorf("%w: card %q is not in %s's hand", ErrIllegalMove, card.Name, p)
	}
	if !gs.grid.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) is out of bounds", ErrIllegalMove, row, col)
	}
	switch gs.grid.at(Position{Row: row, Col: col}).Kind {
	case Hole:
		return fmt.Errorf("%w: (%d,%d) is a hole", ErrIllegalMove, row, col)
	case Occupied:
		return fmt.Errorf("%w: (%d,%d) is already occupied", ErrIllegalMove, row, col)
	}
	return nil
}

// IsLegalMove reports whether PlayCard would accept the move.
func (gs *GameState) IsLegalMove(p Player, card Card, row, col int) bool {
	return gs.checkMove(p, card, row, col) == nil
}

// NumCardsAbleToFlip reports how many cards playing card at (row, col) for p
// would flip. Turn order and hand membership are not checked, so strategies
// can ask on behalf of either player. Unplayable cells flip nothing.
func (gs *GameState) NumCardsAbleToFlip(p Player, card Card, row, col int) int {
	if gs.grid == nil {
		return 0
	}
	sim := gs.grid.Clone()
	if !sim.Place(row, col, card, p) {
		return 0
	}
	flipped, err := Resolve(sim, Position{Row: row, Col: col}, gs.rule)
	if err != nil {
		return 0
	}
	return len(flipped)
}

// Simulate plays m for the current player on a copy and returns the copy.
func (gs *GameState) Simulate(m Move) (ReadOnlyModel, int, error) {
	next := gs.Copy()
	flipped, err := next.play(gs.current, m.Card, m.Row, m.Col)
	if err != nil {
		return nil, 0, err
	}
	return next, len(flipped), nil
}

// Score is the number of cells p owns plus the cards left in p's hand.
func (gs *GameState) Score(p Player) int {
	owned := 0
	if gs.grid != nil {
		owned = gs.grid.CountOwned(p)
	}
	return owned + len(gs.handOf(p))
}

// Winner returns the player with the higher score once the game is over.
// It returns None on a tie or while the game is still running.
func (gs *GameState) Winner() Player {
	if gs.phase != Over {
		return None
	}
	red, blue := gs.Score(Red), gs.Score(Blue)
	switch {
	case red > blue:
		return Red
	case blue > red:
		return Blue
	default:
		return None
	}
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.phase))

	if gs.grid != nil {
		for _, c := range gs.grid.cells {
			binary.Write(hasher, binary.LittleEndian, int64(c.Kind))
			binary.Write(hasher, binary.LittleEndian, int64(c.Owner))
			writeCard(hasher, c.Card)
		}
	}

	for _, p := range []Player{Red, Blue} {
		binary.Write(hasher, binary.LittleEndian, int64(len(gs.hands[p])))
		for _, card := range gs.hands[p] {
			writeCard(hasher, card)
		}
	}

	return StateHash(hasher.Sum64())
}

func writeCard(w interface{ Write([]byte) (int, error) }, c Card) {
	w.Write([]byte(c.Name))
	w.Write([]byte{0})
	for _, v := range c.Attack {
		w.Write([]byte{byte(v)})
	}
}

func (gs *GameState) handOf(p Player) []Card {
	if p != Red && p != Blue {
		return nil
	}
	return gs.hands[p]
}

// Hand returns a copy of p's hand in dealing order.
func (gs *GameState) Hand(p Player) []Card {
	return slices.Clone(gs.handOf(p))
}

func (gs *GameState) CurrentPlayer() Player { return gs.current }
func (gs *GameState) Phase() Phase          { return gs.phase }
func (gs *GameState) IsGameOver() bool      { return gs.phase == Over }
func (gs *GameState) Rule() Rule            { return gs.rule }

func (gs *GameState) Rows() int {
	if gs.grid == nil {
		return 0
	}
	return gs.grid.Rows()
}

func (gs *GameState) Cols() int {
	if gs.grid == nil {
		return 0
	}
	return gs.grid.Cols()
}

func (gs *GameState) Cell(row, col int) (Cell, error) {
	if gs.grid == nil {
		return Cell{}, fmt.Errorf("%w: game has not started", ErrIllegalState)
	}
	return gs.grid.Cell(row, col)
}

// CellOwner returns the owner of (row, col), None for holes and empty cells.
func (gs *GameState) CellOwner(row, col int) (Player, error) {
	c, err := gs.Cell(row, col)
	if err != nil {
		return None, err
	}
	return c.Owner, nil
}

// GridView returns a copy of the grid for rendering.
func (gs *GameState) GridView() *Grid {
	if gs.grid == nil {
		return nil
	}
	return gs.grid.Clone()
}

func (gs *GameState) Render() string {
	if gs.grid == nil {
		return ""
	}
	return gs.grid.Render()
}
