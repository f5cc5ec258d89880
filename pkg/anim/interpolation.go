// Package anim samples bone poses from keyframe tracks.
//
// A Track holds three independent keyframe channels (translation, rotation,
// scale) whose keys are evenly spaced across the sequence: key i of n sits at
// relative position i/(n-1). MapTime turns a relative position into the two
// bracketing keys and a blend factor, and SamplePose applies it to every
// channel of every bone.
package anim

import (
	"fmt"
	"strings"
)

// Interpolation selects how values between two keys are blended.
type Interpolation uint8

const (
	// Linear blends between bracketing keys (lerp for vectors, slerp for rotations).
	Linear Interpolation = iota
	// Step holds the earlier bracketing key until the next one is reached.
	Step
)

// String returns the lowercase name of the mode.
func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("interpolation(%d)", uint8(i))
	}
}

// ParseInterpolation parses a mode name. Accepts "linear"/"smooth" and "step"/"stepped".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "smooth":
		return Linear, nil
	case "step", "stepped":
		return Step, nil
	default:
		return Linear, fmt.Errorf("unknown interpolation %q", s)
	}
}
