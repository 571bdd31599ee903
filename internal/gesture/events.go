package gesture

// Event names published on the bus. Each name carries the matching
// payload type below; payloads are delivered synchronously and have no
// lifetime beyond the handler call.
const (
	EventSwipe  = "swipe"
	EventZoom   = "zoom"
	EventRotate = "rotate"
	EventReset  = "reset"
	EventLock   = "lock"
	EventUnlock = "unlock"
)

// Direction is the horizontal direction of a swipe.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// SwipeEvent is the payload of EventSwipe.
type SwipeEvent struct {
	Direction Direction `json:"direction"`
}

// ZoomEvent is the payload of EventZoom. Scale is a per-frame ratio
// around 1.0 (1.02 means "grow 2% this frame").
type ZoomEvent struct {
	Scale float64 `json:"scale"`
}

// RotateEvent is the payload of EventRotate. Deltas are per-frame
// index-tip displacement scaled by the rotate gain, so downstream
// rotation speed follows hand velocity rather than absolute position.
type RotateEvent struct {
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
}

// ResetEvent is the payload of EventReset.
type ResetEvent struct{}

// LockEvent is the payload of EventLock.
type LockEvent struct{}

// UnlockEvent is the payload of EventUnlock.
type UnlockEvent struct{}
