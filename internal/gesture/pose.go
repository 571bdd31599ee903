package gesture

import "github.com/mudralabs/mudra/internal/detector"

// Pose is the discrete label assigned to one hand for one frame.
type Pose int

const (
	PoseUnknown Pose = iota
	PoseFist
	PosePoint
	PosePalm
	PoseVictory
)

// String returns the lowercase name of the pose.
func (p Pose) String() string {
	switch p {
	case PoseFist:
		return "fist"
	case PosePoint:
		return "point"
	case PosePalm:
		return "palm"
	case PoseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// digit tip/joint landmark pairs used by the extension test, thumb
// through pinky. The thumb compares tip against IP; fingers compare
// tip against PIP.
var digitJoints = [5][2]int{
	{detector.ThumbTip, detector.ThumbIP},
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Classify maps one hand's landmarks to a pose label.
//
// A digit counts as extended when its tip sits above its proximal joint
// in the image (Y grows downward), within a tolerance margin. The
// classification rules overlap, so their order is load-bearing:
//
//  1. four or more digits extended           -> Palm
//  2. index+middle up, ring+pinky down       -> Victory (thumb ignored)
//  3. nothing extended, or only the thumb    -> Fist
//  4. index extended (victory already ruled out) -> Point
//  5. otherwise                              -> Unknown
func Classify(h *detector.Hand, tolerance float64) Pose {
	var extended [5]bool
	count := 0
	for d, pair := range digitJoints {
		tip := h.Points[pair[0]]
		joint := h.Points[pair[1]]
		if tip.Y < joint.Y+tolerance {
			extended[d] = true
			count++
		}
	}

	thumb, index, middle, ring, pinky := extended[0], extended[1], extended[2], extended[3], extended[4]

	switch {
	case count >= 4:
		return PosePalm
	case index && middle && !ring && !pinky:
		return PoseVictory
	case count == 0, count == 1 && thumb:
		return PoseFist
	case index:
		return PosePoint
	default:
		return PoseUnknown
	}
}
