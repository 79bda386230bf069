package game

// EventType enumerates the status notifications a GameState publishes.
type EventType int

const (
	EventModelUpdated EventType = iota
	EventTurnChanged
	EventInvalidMove
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventModelUpdated:
		return "ModelUpdated"
	case EventTurnChanged:
		return "TurnChanged"
	case EventInvalidMove:
		return "InvalidMove"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event describes one status change.
type Event struct {
	Type    EventType
	Player  Player     // mover for ModelUpdated and InvalidMove, next player for TurnChanged
	Flipped []Position // ModelUpdated only
	Err     error      // InvalidMove only
	Winner  Player     // GameOver only, None on a tie
}

// StatusListener receives events synchronously after the call that caused
// them has finished changing state.
type StatusListener interface {
	OnStatus(Event)
}

// ListenerFunc adapts a function to StatusListener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnStatus(e Event) { f(e) }
