package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/mudralabs/mudra/internal/bus"
	"github.com/mudralabs/mudra/internal/detector"
)

// State is the engine's interaction state. Exactly one state is active
// at a time; it is mutated only by the engine's own transition logic.
type State int

const (
	// StateIdle: no interaction in progress.
	StateIdle State = iota
	// StateTracking: a rotation anchor is latched but has not settled.
	StateTracking
	// StateRotating: per-frame rotate deltas are being emitted.
	StateRotating
	// StateSwitching: a swipe just fired; momentary, reverts next frame
	// and suppresses rotation and zoom for the frame it fired in.
	StateSwitching
	// StatePinching: a two-hand zoom session is active.
	StatePinching
	// StateLocked: interaction is frozen; only a palm-hold reset or the
	// hands leaving view (both landing in StateIdle) can exit.
	StateLocked
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	case StateRotating:
		return "rotating"
	case StateSwitching:
		return "switching"
	case StatePinching:
		return "pinching"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Engine converts per-frame hand detections into debounced interaction
// events. All processing happens synchronously inside ProcessFrame on
// the caller's goroutine; the mutex only guards the state readout
// exposed to the HTTP and tray surfaces.
type Engine struct {
	params   Params
	clock    Clock
	bus      *bus.Bus
	smoother *Smoother

	mu    sync.Mutex
	state State

	// Two-hand pinch session. A zero baseline means no session.
	pinchBaseline float64

	// Rotation session. anchorX/Y hold the previous frame's index tip;
	// startX/Y the session origin; totals accumulate internally but
	// only per-frame deltas are ever emitted.
	anchored         bool
	anchorX, anchorY float64
	startX, startY   float64
	totalDX, totalDY float64
	gestureStart     time.Time
	lastMove         time.Time

	// Debounce timers. Zero values mean "not running".
	palmHoldStart time.Time
	swipeFiredAt  time.Time
}

// NewEngine creates an Engine publishing on b. A nil clock selects the
// system clock; a nil bus gets a fresh one (reachable via Bus).
func NewEngine(params Params, b *bus.Bus, clock Clock) *Engine {
	if b == nil {
		b = bus.New()
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		params:   params,
		clock:    clock,
		bus:      b,
		smoother: NewSmoother(params.SmoothWindow),
		state:    StateIdle,
	}
}

// Bus returns the bus the engine publishes on.
func (e *Engine) Bus() *bus.Bus {
	return e.bus
}

// State returns the current interaction state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SessionTravel returns the cumulative unscaled index-tip displacement
// of the current rotation session. Only per-frame deltas are emitted as
// events; the totals exist for diagnostics.
func (e *Engine) SessionTravel() (dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalDX, e.totalDY
}

// SessionOrigin returns the index-tip position latched at the start of
// the current rotation session. ok is false when no session is active.
func (e *Engine) SessionOrigin() (x, y float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startX, e.startY, e.anchored
}

// SetParams swaps the tuning parameters, e.g. when a profile is
// activated. Any in-flight gesture session is abandoned so stale
// baselines never mix with the new tuning.
func (e *Engine) SetParams(params Params) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.params = params
	e.smoother = NewSmoother(params.SmoothWindow)
	e.pinchBaseline = 0
	e.clearRotation()
	e.palmHoldStart = time.Time{}
	if e.state != StateLocked {
		e.state = StateIdle
	}
}

// Params returns the current tuning parameters.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Lock freezes interaction processing until the hands leave view or a
// palm-hold reset fires. Consumers call it when the downstream surface
// must not receive gestures, e.g. while a menu is open.
func (e *Engine) Lock() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateLocked {
		return
	}
	e.state = StateLocked
	e.pinchBaseline = 0
	e.clearRotation()
	e.palmHoldStart = time.Time{}
	e.bus.Emit(EventLock, LockEvent{})
}

// ProcessFrame runs the full per-frame pipeline: smoothing, pose
// classification, disambiguation and the state transition, emitting
// events synchronously on the bus. It must be called from a single
// goroutine; each call runs to completion before the next frame.
func (e *Engine) ProcessFrame(hands []detector.Hand) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	// Switching is momentary: it only suppresses the frame it fired in.
	if e.state == StateSwitching {
		e.state = StateIdle
	}

	if len(hands) > MaxHands {
		hands = hands[:MaxHands]
	}

	smoothed := make([]detector.Hand, len(hands))
	for i := range hands {
		smoothed[i] = e.smoother.Smooth(hands[i], i)
	}
	// Vacant slots start a fresh average when a hand re-appears.
	for i := len(hands); i < MaxHands; i++ {
		e.smoother.ClearSlot(i)
	}

	mode, sel := SelectHands(smoothed, e.params.GhostDistance)

	switch mode {
	case ModeNone:
		e.smoother.Reset()
		e.resetState()

	case ModeDual:
		if e.state == StateLocked {
			return
		}
		e.clearRotation()
		e.palmHoldStart = time.Time{}
		e.processPinch(&sel[0], &sel[1])

	case ModeSingle:
		e.pinchBaseline = 0
		e.processSingle(&sel[0], now)
	}
}

// processSingle evaluates the single-hand branch for one frame.
func (e *Engine) processSingle(h *detector.Hand, now time.Time) {
	// Global swipe cooldown: while it runs, single-hand processing is
	// skipped entirely.
	if !e.swipeFiredAt.IsZero() && now.Sub(e.swipeFiredAt) < e.params.SwipeCooldown {
		return
	}

	pose := Classify(h, e.params.ExtendTolerance)

	// Palm hold -> reset. The hold must be continuous: any non-palm
	// frame clears the timer, no partial credit.
	if pose == PosePalm {
		if e.palmHoldStart.IsZero() {
			e.palmHoldStart = now
		} else if now.Sub(e.palmHoldStart) >= e.params.PalmHold && e.state != StateIdle {
			e.bus.Emit(EventReset, ResetEvent{})
			e.resetState()
		}
		return
	}
	e.palmHoldStart = time.Time{}

	// While locked only the palm reset above (or hands vanishing) can
	// advance the machine.
	if e.state == StateLocked {
		return
	}

	switch pose {
	case PosePoint:
		if e.trySwipe(h, now) {
			return
		}
		e.processRotate(h, now)
	case PoseFist:
		e.processRotate(h, now)
	default:
		// Unknown or victory: nothing to latch onto.
		e.resetState()
	}
}

// trySwipe fires a switch-item swipe when the index finger points
// predominantly sideways. Returns true if it consumed the frame.
func (e *Engine) trySwipe(h *detector.Hand, now time.Time) bool {
	tip := h.Points[detector.IndexTip]
	mcp := h.Points[detector.IndexMCP]
	dx := tip.X - mcp.X
	dy := tip.Y - mcp.Y

	if math.Abs(dx) <= e.params.SwipeAxisRatio*math.Abs(dy) {
		return false
	}
	if math.Abs(dx) <= e.params.SwipeMinDX {
		return false
	}

	dir := DirectionRight
	if dx < 0 {
		dir = DirectionLeft
	}

	e.bus.Emit(EventSwipe, SwipeEvent{Direction: dir})
	e.state = StateSwitching
	e.swipeFiredAt = now
	e.clearRotation()
	return true
}

// processRotate latches and advances a rotation session driven by the
// index fingertip.
func (e *Engine) processRotate(h *detector.Hand, now time.Time) {
	tip := h.Points[detector.IndexTip]

	if !e.anchored {
		// First qualifying frame only establishes the baseline.
		e.anchorX, e.anchorY = tip.X, tip.Y
		e.startX, e.startY = tip.X, tip.Y
		e.totalDX, e.totalDY = 0, 0
		e.gestureStart = now
		e.lastMove = now
		e.anchored = true
		e.state = StateTracking
		return
	}

	dx := tip.X - e.anchorX
	dy := tip.Y - e.anchorY
	e.anchorX, e.anchorY = tip.X, tip.Y

	// Settle window after the latch, to avoid a single-frame snap.
	if now.Sub(e.gestureStart) < e.params.RotateSettle {
		return
	}

	// Stillness auto-idle: a motionless hand must not pin the system
	// in mid-rotation.
	if math.Hypot(dx, dy) > e.params.StillThreshold {
		e.lastMove = now
	} else if now.Sub(e.lastMove) > e.params.StillTimeout {
		e.clearRotation()
		e.state = StateIdle
		return
	}

	e.state = StateRotating
	e.totalDX += dx
	e.totalDY += dy
	e.bus.Emit(EventRotate, RotateEvent{
		DeltaX: dx * e.params.RotateGain,
		DeltaY: dy * e.params.RotateGain,
	})
}

// processPinch advances the two-hand zoom session. Zoom is ratio-based:
// the baseline moves to the current distance every frame, so zoom speed
// is independent of on-screen hand size.
func (e *Engine) processPinch(a, b *detector.Hand) {
	ca, cb := a.Centroid(), b.Centroid()
	d := math.Hypot(ca.X-cb.X, ca.Y-cb.Y)

	if e.pinchBaseline == 0 {
		e.pinchBaseline = d
		e.state = StatePinching
		return
	}

	raw := d / e.pinchBaseline
	if raw < e.params.ZoomClampLo {
		raw = e.params.ZoomClampLo
	} else if raw > e.params.ZoomClampHi {
		raw = e.params.ZoomClampHi
	}

	scale := 1 + (raw-1)*e.params.ZoomGain
	e.pinchBaseline = d
	e.state = StatePinching

	if math.Abs(scale-1) > e.params.ZoomDeadband {
		e.bus.Emit(EventZoom, ZoomEvent{Scale: scale})
	}
}

// resetState returns the machine to idle and clears all per-session
// state. Leaving StateLocked emits Unlock; that is the only permitted
// exit from the locked state.
func (e *Engine) resetState() {
	if e.state == StateLocked {
		e.bus.Emit(EventUnlock, UnlockEvent{})
	}
	e.state = StateIdle
	e.pinchBaseline = 0
	e.clearRotation()
	e.palmHoldStart = time.Time{}
}

// clearRotation drops the rotation anchors and session timers.
func (e *Engine) clearRotation() {
	e.anchored = false
	e.anchorX, e.anchorY = 0, 0
	e.startX, e.startY = 0, 0
	e.totalDX, e.totalDY = 0, 0
	e.gestureStart = time.Time{}
	e.lastMove = time.Time{}
}
