package orient

import "math"

// DefaultThreshold is the fraction of 1 g an axis must carry to count.
const DefaultThreshold = 0.8

// Tracker classifies a normalised acceleration vector (in g). The axis
// carrying gravity wins if it exceeds Threshold and clearly dominates the
// other two; anything else is Unknown. At rest the axis pointing away from
// the ground reads +1 g: +X is the top edge in portrait, +Y the top edge in
// landscape, +Z the face.
type Tracker struct {
	Threshold float64
	last      Orientation
}

func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Tracker{Threshold: threshold}
}

// Update classifies one sample.
func (t *Tracker) Update(x, y, z float64) Orientation {
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)
	o := Unknown
	switch {
	case ay >= t.Threshold && ay > ax && ay > az:
		o = LandscapeUp
		if y < 0 {
			o = LandscapeDown
		}
	case ax >= t.Threshold && ax > ay && ax > az:
		o = PortraitUp
		if x < 0 {
			o = PortraitDown
		}
	case az >= t.Threshold && az > ax && az > ay:
		o = FaceDown
		if z > 0 {
			o = FaceUp
		}
	}
	t.last = o
	return o
}

// Last is the most recent classification.
func (t *Tracker) Last() Orientation { return t.last }

// Gravity is the resting reading, in g, of a device held in o. Unknown
// maps to an even diagonal that no threshold above 0.58 accepts.
func Gravity(o Orientation) (x, y, z float64) {
	switch o {
	case LandscapeUp:
		return 0, 1, 0
	case LandscapeDown:
		return 0, -1, 0
	case PortraitUp:
		return 1, 0, 0
	case PortraitDown:
		return -1, 0, 0
	case FaceUp:
		return 0, 0, 1
	case FaceDown:
		return 0, 0, -1
	}
	d := 1 / math.Sqrt(3)
	return d, d, d
}
