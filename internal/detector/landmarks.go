// Package detector provides hand landmark types and detection interfaces
// for the mudra interaction engine.
package detector

// Hand landmark indices following the MediaPipe 21-point convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a single tracked keypoint. X and Y are normalized image
// coordinates in [0,1] (Y grows downward); Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand for one frame: the 21 landmarks plus the
// tracker-reported handedness label and detection confidence. A Hand is
// immutable after creation and owned by the frame it was detected in.
type Hand struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left", "Right" or ""
	Score      float64               `json:"score"`
}

// Centroid returns the mean position of all 21 landmarks. It is the
// reference point used for ghost suppression and pinch distance.
func (h *Hand) Centroid() Point3D {
	var c Point3D
	for i := 0; i < NumLandmarks; i++ {
		c.X += h.Points[i].X
		c.Y += h.Points[i].Y
		c.Z += h.Points[i].Z
	}
	c.X /= NumLandmarks
	c.Y /= NumLandmarks
	c.Z /= NumLandmarks
	return c
}

// IndexTipPoint returns the index fingertip landmark, the point the
// engine tracks for rotation and swipe gestures.
func (h *Hand) IndexTipPoint() Point3D {
	return h.Points[IndexTip]
}
