package sequence

import "github.com/coreman2200/funtimes-neomatrix/internal/orient"

// Keyframe represents a value at time T (seconds) with an easing function
// that applies to the segment starting at this keyframe.
type Keyframe struct {
	T    float64 `json:"t"`
	V    float64 `json:"v"`
	Ease string  `json:"ease,omitempty"` // "linear","smooth","cubic"
}

// Envelope is a sorted list of keyframes; Eval(t) interpolates a value.
type Envelope struct {
	Keys []Keyframe `json:"keys"`
}

// Step holds the device in one orientation for DurationS seconds. When
// TiltS > 0 the last TiltS seconds of the step rotate the gravity vector
// toward the next step's orientation, shaped by Ease.
type Step struct {
	Name        string             `json:"name,omitempty"`
	Orientation orient.Orientation `json:"orientation"`
	DurationS   float64            `json:"durationS"`
	TiltS       float64            `json:"tiltS,omitempty"`
	Ease        string             `json:"ease,omitempty"`
}

// Program is a scripted handling of the device.
type Program struct {
	Version string `json:"version"` // e.g., "orient.v1"
	Loop    bool   `json:"loop,omitempty"`
	Steps   []Step `json:"steps"`
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are callbacks into whatever consumes the simulated motion.
type Hooks struct {
	// SetOrientation fires when a step becomes current.
	SetOrientation func(o orient.Orientation)
	// SetGravity fires on every tick with the simulated reading in g.
	SetGravity func(x, y, z float64)
	// Done fires when a non-looping program runs out.
	Done func()
}

// Player owns the current Program timeline and uses Hooks to report it.
type Player struct {
	State PlayerState

	prog Program
	nowS float64 // position within program
	idx  int     // current step index

	g [3]float64

	hooks Hooks
}
