// Package orient turns device attitude into an animation mode.
package orient

import (
	"fmt"
	"strings"
)

// Orientation is the classified attitude of the matrix.
type Orientation uint8

const (
	Unknown Orientation = iota
	FaceUp
	FaceDown
	LandscapeUp
	LandscapeDown
	PortraitUp
	PortraitDown
)

var names = [...]string{
	Unknown:       "unknown",
	FaceUp:        "face_up",
	FaceDown:      "face_down",
	LandscapeUp:   "landscape_up",
	LandscapeDown: "landscape_down",
	PortraitUp:    "portrait_up",
	PortraitDown:  "portrait_down",
}

func (o Orientation) String() string {
	if int(o) < len(names) {
		return names[o]
	}
	return fmt.Sprintf("orientation(%d)", uint8(o))
}

// Definite reports whether o selects a mode on its own.
func (o Orientation) Definite() bool {
	switch o {
	case LandscapeUp, LandscapeDown, PortraitUp, PortraitDown:
		return true
	}
	return false
}

// Parse accepts the String form, case-insensitively, with '-' or '_'.
func Parse(s string) (Orientation, error) {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range names {
		if n == k {
			return Orientation(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown orientation %q", s)
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
