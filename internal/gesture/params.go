// Package gesture implements the mudra gesture recognition engine: landmark
// smoothing, pose classification, two-hand disambiguation and the stateful
// machine that turns noisy per-frame hand data into debounced interaction
// events.
package gesture

import "time"

// Params holds the tuning knobs of the engine. Zero values are never
// meaningful; construct with DefaultParams and override fields.
type Params struct {
	// SmoothWindow is the trailing-window size of the landmark smoother.
	SmoothWindow int

	// ExtendTolerance is the margin (normalized units) allowed when
	// testing whether a fingertip sits above its proximal joint.
	ExtendTolerance float64

	// GhostDistance is the inter-centroid distance below which two
	// simultaneous detections are treated as one ghosted hand.
	GhostDistance float64

	// SwipeCooldown is the minimum interval between two swipe events.
	// While it runs, all single-hand processing is skipped.
	SwipeCooldown time.Duration

	// SwipeMinDX is the minimum horizontal index-finger extent
	// (MCP to tip) for a swipe.
	SwipeMinDX float64

	// SwipeAxisRatio requires |dx| > SwipeAxisRatio*|dy| so that only
	// predominantly horizontal points register as swipes.
	SwipeAxisRatio float64

	// PalmHold is how long a palm must be held continuously before a
	// reset fires.
	PalmHold time.Duration

	// RotateSettle is the delay between latching a rotation anchor and
	// emitting the first rotate event, to avoid a single-frame snap.
	RotateSettle time.Duration

	// RotateGain scales per-frame index-tip displacement into rotate
	// deltas.
	RotateGain float64

	// StillThreshold is the per-frame movement magnitude below which a
	// rotating hand counts as motionless.
	StillThreshold float64

	// StillTimeout forces the engine back to idle after the hand has
	// been motionless this long during a rotation.
	StillTimeout time.Duration

	// ZoomClampLo and ZoomClampHi bound the raw per-frame pinch ratio
	// to suppress single-frame tracking spikes.
	ZoomClampLo float64
	ZoomClampHi float64

	// ZoomGain amplifies the clamped ratio around 1.0.
	ZoomGain float64

	// ZoomDeadband suppresses zoom events whose scale factor is within
	// this distance of 1.0.
	ZoomDeadband float64
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		SmoothWindow:    3,
		ExtendTolerance: 0.02,
		GhostDistance:   0.12,
		SwipeCooldown:   1200 * time.Millisecond,
		SwipeMinDX:      0.04,
		SwipeAxisRatio:  0.8,
		PalmHold:        1200 * time.Millisecond,
		RotateSettle:    50 * time.Millisecond,
		RotateGain:      2.5,
		StillThreshold:  0.002,
		StillTimeout:    300 * time.Millisecond,
		ZoomClampLo:     0.85,
		ZoomClampHi:     1.15,
		ZoomGain:        1.5,
		ZoomDeadband:    0.0005,
	}
}
