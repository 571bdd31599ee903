package gesture

import (
	"testing"

	"github.com/mudralabs/mudra/internal/detector"
)

const testGhostDistance = 0.12

func TestSelectHands_NoHands(t *testing.T) {
	mode, sel := SelectHands(nil, testGhostDistance)
	if mode != ModeNone {
		t.Errorf("mode = %v, want ModeNone", mode)
	}
	if len(sel) != 0 {
		t.Errorf("selected %d hands, want 0", len(sel))
	}
}

func TestSelectHands_OneHand(t *testing.T) {
	hands := []detector.Hand{detector.PointHandAt(0.5, 0.5)}

	mode, sel := SelectHands(hands, testGhostDistance)
	if mode != ModeSingle {
		t.Errorf("mode = %v, want ModeSingle", mode)
	}
	if len(sel) != 1 {
		t.Errorf("selected %d hands, want 1", len(sel))
	}
}

func TestSelectHands_GhostSuppression(t *testing.T) {
	// Two detections 0.05 apart are one physical hand double-counted
	// by the tracker, even when the labels claim left and right.
	first := detector.Relabel(detector.PalmHandAt(0.5, 0.5), "Left")
	ghost := detector.Relabel(detector.Translate(first, 0.05, 0), "Right")

	mode, sel := SelectHands([]detector.Hand{first, ghost}, testGhostDistance)
	if mode != ModeSingle {
		t.Fatalf("mode = %v, want ModeSingle", mode)
	}
	if len(sel) != 1 || sel[0].Handedness != "Left" {
		t.Errorf("ghost suppression must keep the first detection, got %+v", sel)
	}
}

func TestSelectHands_GenuinePair(t *testing.T) {
	left := detector.Relabel(detector.PalmHandAt(0.2, 0.5), "Left")
	right := detector.Relabel(detector.PalmHandAt(0.8, 0.5), "Right")

	mode, sel := SelectHands([]detector.Hand{left, right}, testGhostDistance)
	if mode != ModeDual {
		t.Fatalf("mode = %v, want ModeDual", mode)
	}
	if len(sel) != 2 {
		t.Errorf("selected %d hands, want 2", len(sel))
	}
}

func TestSelectHands_CaseInsensitiveLabels(t *testing.T) {
	a := detector.Relabel(detector.PalmHandAt(0.2, 0.5), "LEFT")
	b := detector.Relabel(detector.PalmHandAt(0.8, 0.5), "right")

	mode, _ := SelectHands([]detector.Hand{a, b}, testGhostDistance)
	if mode != ModeDual {
		t.Errorf("mode = %v, want ModeDual for mixed-case labels", mode)
	}
}

func TestSelectHands_DuplicateLabelsFallBack(t *testing.T) {
	// Two far-apart detections both labeled Right cannot be a genuine
	// pair; the tracker duplicated a label. Fall back to single-hand.
	a := detector.Relabel(detector.PalmHandAt(0.2, 0.5), "Right")
	b := detector.Relabel(detector.PalmHandAt(0.8, 0.5), "Right")

	mode, sel := SelectHands([]detector.Hand{a, b}, testGhostDistance)
	if mode != ModeSingle {
		t.Fatalf("mode = %v, want ModeSingle", mode)
	}
	if len(sel) != 1 {
		t.Errorf("selected %d hands, want 1", len(sel))
	}
}

func TestSelectHands_MissingLabelFallsBack(t *testing.T) {
	a := detector.Relabel(detector.PalmHandAt(0.2, 0.5), "")
	b := detector.Relabel(detector.PalmHandAt(0.8, 0.5), "Right")

	mode, _ := SelectHands([]detector.Hand{a, b}, testGhostDistance)
	if mode != ModeSingle {
		t.Errorf("mode = %v, want ModeSingle when a label is missing", mode)
	}
}
