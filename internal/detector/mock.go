package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns pre-configured hands, optionally from a queued sequence of
// frames so tests can script multi-frame gestures.
type MockDetector struct {
	hands []Hand
	queue [][]Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call
// once the queued frames (if any) are exhausted.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// Enqueue appends per-frame hand sets; each Detect call consumes one.
func (m *MockDetector) Enqueue(frames ...[]Hand) {
	m.queue = append(m.queue, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the next queued frame, the static hands, or the
// configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture geometry. Hands are built around an anchor point: when the
// index finger is extended its tip lands exactly on the anchor, which
// lets tests steer rotation deltas precisely. Y grows downward, so an
// extended fingertip sits well above (smaller Y than) its PIP joint and
// a curled fingertip sits below it.
const (
	figMCPDrop  = 0.20
	figPIPDrop  = 0.13
	figCurlDrop = 0.18
)

// digit X offsets relative to the anchor, thumb through pinky.
var digitOffsets = [5]float64{0.08, 0.00, -0.04, -0.08, -0.12}

// buildHand constructs a right hand around anchor (ax, ay). curled[d]
// selects curled or extended geometry for digit d (0=thumb .. 4=pinky).
func buildHand(ax, ay float64, curled [5]bool) Hand {
	h := Hand{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: ax - 0.02, Y: ay + 0.30}

	// Thumb chain uses CMC/MCP/IP instead of MCP/PIP/DIP.
	h.Points[ThumbCMC] = Point3D{X: ax + 0.10, Y: ay + 0.24}
	h.Points[ThumbMCP] = Point3D{X: ax + 0.09, Y: ay + figMCPDrop}
	h.Points[ThumbIP] = Point3D{X: ax + 0.08, Y: ay + figPIPDrop}
	if curled[0] {
		h.Points[ThumbTip] = Point3D{X: ax + 0.08, Y: ay + figCurlDrop}
	} else {
		h.Points[ThumbTip] = Point3D{X: ax + 0.08, Y: ay + 0.02}
	}

	fingers := []struct{ mcp, pip, dip, tip int }{
		{IndexMCP, IndexPIP, IndexDIP, IndexTip},
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip},
		{RingMCP, RingPIP, RingDIP, RingTip},
		{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip},
	}

	for i, f := range fingers {
		xoff := digitOffsets[i+1]
		h.Points[f.mcp] = Point3D{X: ax + xoff, Y: ay + figMCPDrop}
		h.Points[f.pip] = Point3D{X: ax + xoff, Y: ay + figPIPDrop}
		if curled[i+1] {
			h.Points[f.dip] = Point3D{X: ax + xoff, Y: ay + 0.16}
			h.Points[f.tip] = Point3D{X: ax + xoff, Y: ay + figCurlDrop}
		} else {
			h.Points[f.dip] = Point3D{X: ax + xoff, Y: ay + 0.06}
			h.Points[f.tip] = Point3D{X: ax + xoff, Y: ay}
		}
	}

	return h
}

// FistHandAt returns a fist with all digits curled, anchored at (x, y).
func FistHandAt(x, y float64) Hand {
	return buildHand(x, y, [5]bool{true, true, true, true, true})
}

// PointHandAt returns a pointing hand whose index fingertip is exactly
// at (x, y). The index points straight up, so it does not qualify as a
// horizontal swipe.
func PointHandAt(x, y float64) Hand {
	return buildHand(x, y, [5]bool{true, false, true, true, true})
}

// PalmHandAt returns an open palm (all five digits extended) anchored
// at (x, y).
func PalmHandAt(x, y float64) Hand {
	return buildHand(x, y, [5]bool{false, false, false, false, false})
}

// VictoryHandAt returns a victory pose (index and middle extended,
// thumb, ring and pinky curled) anchored at (x, y).
func VictoryHandAt(x, y float64) Hand {
	return buildHand(x, y, [5]bool{true, false, false, true, true})
}

// SwipePointHandAt returns a pointing hand with the index finger held
// nearly horizontal: the index MCP sits at (x, y) and the tip at
// (x+dx, y+0.01). dx may be negative for a leftward point.
func SwipePointHandAt(x, y, dx float64) Hand {
	h := buildHand(x, y, [5]bool{true, false, true, true, true})
	h.Points[IndexMCP] = Point3D{X: x, Y: y}
	h.Points[IndexPIP] = Point3D{X: x + dx/2, Y: y + 0.005}
	h.Points[IndexDIP] = Point3D{X: x + 3*dx/4, Y: y + 0.008}
	h.Points[IndexTip] = Point3D{X: x + dx, Y: y + 0.01}
	return h
}

// Relabel returns a copy of h with the given handedness label.
func Relabel(h Hand, handedness string) Hand {
	h.Handedness = handedness
	return h
}

// Translate returns a copy of h with every landmark shifted by (dx, dy).
func Translate(h Hand, dx, dy float64) Hand {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}
