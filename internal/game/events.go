package game

// EventKind identifies a domain event emitted by the tick engine.
type EventKind string

const (
	EventFoodEaten       EventKind = "food-eaten"
	EventTrapHit         EventKind = "trap-hit"
	EventSpeedIncrease   EventKind = "speed-increase"
	EventWallPassthrough EventKind = "wall-passthrough"
)

// Event is a single domain event, appended to the session record by the
// persistence collaborator.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Detail string
}
