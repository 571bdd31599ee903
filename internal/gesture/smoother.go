package gesture

import "github.com/mudralabs/mudra/internal/detector"

// MaxHands is the number of positional hand slots the engine tracks.
const MaxHands = 2

// Smoother reduces per-frame landmark jitter by averaging a bounded
// trailing window of raw hand sets per positional slot. Slot identity
// is the index into the per-frame hand list, not a persistent hand ID;
// the caller clears a slot when it goes vacant so a re-appearing hand
// starts a fresh average.
type Smoother struct {
	window  int
	buffers [MaxHands][]detector.Hand
}

// NewSmoother creates a Smoother with the given trailing-window size.
// Sizes below 1 are treated as 1 (no smoothing).
func NewSmoother(window int) *Smoother {
	if window < 1 {
		window = 1
	}
	return &Smoother{window: window}
}

// Smooth pushes raw into the slot's window and returns the arithmetic
// mean of every landmark across the buffered frames. Handedness and
// score are taken from the newest frame.
func (s *Smoother) Smooth(raw detector.Hand, slot int) detector.Hand {
	if slot < 0 || slot >= MaxHands {
		return raw
	}

	buf := s.buffers[slot]
	if len(buf) >= s.window {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	buf = append(buf, raw)
	s.buffers[slot] = buf

	out := detector.Hand{
		Handedness: raw.Handedness,
		Score:      raw.Score,
	}

	n := float64(len(buf))
	for i := 0; i < detector.NumLandmarks; i++ {
		var sx, sy, sz float64
		for _, h := range buf {
			sx += h.Points[i].X
			sy += h.Points[i].Y
			sz += h.Points[i].Z
		}
		out.Points[i] = detector.Point3D{X: sx / n, Y: sy / n, Z: sz / n}
	}

	return out
}

// ClearSlot drops the buffered frames for one slot.
func (s *Smoother) ClearSlot(slot int) {
	if slot < 0 || slot >= MaxHands {
		return
	}
	s.buffers[slot] = nil
}

// Reset drops the buffered frames for all slots.
func (s *Smoother) Reset() {
	for i := range s.buffers {
		s.buffers[i] = nil
	}
}
