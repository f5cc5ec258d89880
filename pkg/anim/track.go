package anim

import "github.com/Faultbox/bonecodec/pkg/math"

// Track holds the keyframes of one bone. Each channel is sized independently;
// an empty channel means that part of the transform is not animated.
// Tracks are built once at load time and must not be mutated while sampled.
type Track struct {
	Translations []math.Vec3
	Rotations    []math.Quat // unit quaternions
	Scales       []math.Vec3
}

// IsAnimated reports whether any channel has keys.
func (t *Track) IsAnimated() bool {
	return len(t.Translations) > 0 || len(t.Rotations) > 0 || len(t.Scales) > 0
}

// MaxKeys returns the largest key count across the three channels.
func (t *Track) MaxKeys() int {
	return max(len(t.Translations), len(t.Rotations), len(t.Scales))
}

// TrackProvider exposes bone tracks by index.
type TrackProvider interface {
	NumTracks() int
	// Track returns the track for bone i, or nil if i is out of range.
	Track(i int) *Track
}

// Tracks is a slice-backed TrackProvider.
type Tracks []Track

// NumTracks returns len(ts).
func (ts Tracks) NumTracks() int {
	return len(ts)
}

// Track returns &ts[i], or nil if i is out of range.
func (ts Tracks) Track(i int) *Track {
	if i < 0 || i >= len(ts) {
		return nil
	}
	return &ts[i]
}
