package engine

// EventType tags an Event.
type EventType int

const (
	EventSpawn EventType = iota
	EventLock
	EventLineClear
	EventGameOver
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventSpawn:
		return "spawn"
	case EventLock:
		return "lock"
	case EventLineClear:
		return "lineClear"
	case EventGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Event is a lifecycle notification. Piece is set for spawn events,
// Count for line clears.
type Event struct {
	Type  EventType
	Piece PieceType
	Count int
}

// Listener receives events synchronously, in the order they happen, from
// inside the Game call that caused them. Listeners may query the game but
// must not call its mutating methods.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

type nopListener struct{}

func (nopListener) OnEvent(Event) {}
