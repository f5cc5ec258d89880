package anim

// Clip is a decoded animation sequence: one track per bone plus the
// playback defaults recorded by the asset.
type Clip struct {
	Name string
	// Length is the sequence duration in seconds.
	Length float32
	// Interpolation is the mode the asset was authored with.
	Interpolation Interpolation
	// BoneNames[i] names the bone driven by Tracks[i]. May be shorter than Tracks.
	BoneNames []string
	Tracks    Tracks
}

// NumTracks returns the number of bone tracks.
func (c *Clip) NumTracks() int {
	return len(c.Tracks)
}

// Track returns the track for bone i, or nil if out of range.
func (c *Clip) Track(i int) *Track {
	return c.Tracks.Track(i)
}

// BoneName returns the name of bone i, or "" if unnamed.
func (c *Clip) BoneName(i int) string {
	if i < 0 || i >= len(c.BoneNames) {
		return ""
	}
	return c.BoneNames[i]
}

// BoneIndex returns the index of the named bone, or -1.
func (c *Clip) BoneIndex(name string) int {
	for i, n := range c.BoneNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Context returns a sampling context at relativePos using the clip's length
// and authored interpolation.
func (c *Clip) Context(relativePos float32) Context {
	return Context{
		SequenceLength: c.Length,
		RelativePos:    relativePos,
		Interpolation:  c.Interpolation,
	}
}

// ContextAt returns a sampling context at the given time in seconds.
// Clips with no length always sample their first key.
func (c *Clip) ContextAt(seconds float32) Context {
	var pos float32
	if c.Length > 0 {
		pos = seconds / c.Length
	}
	return c.Context(pos)
}

// DecompressBone samples the track of bone trackIndex into out.
// Out-of-range indices leave out untouched.
func (c *Clip) DecompressBone(ctx Context, trackIndex int, out *Transform) {
	if trackIndex < 0 || trackIndex >= len(c.Tracks) {
		return
	}
	SampleBone(ctx, &c.Tracks[trackIndex], out)
}

// DecompressPose samples every bone of the clip into pose.
// See SamplePose for the seeding precondition.
func (c *Clip) DecompressPose(ctx Context, pose []Transform) {
	SamplePose(ctx, c.Tracks, pose)
}

// KeyStats summarizes the key counts of a clip.
type KeyStats struct {
	Bones         int
	AnimatedBones int
	Translations  int
	Rotations     int
	Scales        int
	MaxKeys       int
}

// Stats counts keys across all tracks.
func (c *Clip) Stats() KeyStats {
	s := KeyStats{Bones: len(c.Tracks)}
	for i := range c.Tracks {
		t := &c.Tracks[i]
		if t.IsAnimated() {
			s.AnimatedBones++
		}
		s.Translations += len(t.Translations)
		s.Rotations += len(t.Rotations)
		s.Scales += len(t.Scales)
		s.MaxKeys = max(s.MaxKeys, t.MaxKeys())
	}
	return s
}
