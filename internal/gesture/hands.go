package gesture

import (
	"math"
	"strings"

	"github.com/mudralabs/mudra/internal/detector"
)

// Mode is the interaction mode a frame's detections resolve to.
type Mode int

const (
	// ModeNone means no hands were detected this frame.
	ModeNone Mode = iota
	// ModeSingle means the frame drives a single-hand interaction.
	ModeSingle
	// ModeDual means the frame drives a genuine two-hand interaction.
	ModeDual
)

// SelectHands decides whether the frame's detections form a single-hand
// interaction, a two-hand interaction, or nothing. It is the primary
// defense against the tracker's most common failure mode: one physical
// hand registering as two overlapping detections.
//
// Rules, in order:
//   - no hands: ModeNone.
//   - two or more hands with centroids closer than ghostDistance:
//     almost certainly one ghosted hand; single-hand on the first
//     detection.
//   - two or more hands far enough apart: accepted as two-hand only if
//     one is labeled Left and the other Right (case-insensitive);
//     otherwise single-hand on the first detection.
//   - exactly one hand: single-hand.
//
// For ModeDual the returned slice holds both hands; for ModeSingle just
// the selected one.
func SelectHands(hands []detector.Hand, ghostDistance float64) (Mode, []detector.Hand) {
	switch {
	case len(hands) == 0:
		return ModeNone, nil

	case len(hands) >= 2:
		a, b := &hands[0], &hands[1]
		if centroidDistance(a, b) < ghostDistance {
			return ModeSingle, hands[:1]
		}
		if isLeftRightPair(a.Handedness, b.Handedness) {
			return ModeDual, hands[:2]
		}
		return ModeSingle, hands[:1]

	default:
		return ModeSingle, hands[:1]
	}
}

// centroidDistance is the planar distance between two hand centroids.
// Depth is ignored; the ghost check is about image-space overlap.
func centroidDistance(a, b *detector.Hand) float64 {
	ca, cb := a.Centroid(), b.Centroid()
	dx := ca.X - cb.X
	dy := ca.Y - cb.Y
	return math.Hypot(dx, dy)
}

// isLeftRightPair reports whether the two handedness labels identify
// one left and one right hand, in either order.
func isLeftRightPair(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return (a == "left" && b == "right") || (a == "right" && b == "left")
}
