package anim

import gomath "math"

// Player advances a playback clock over a clip and produces the sampling
// context for the current time.
type Player struct {
	Clip *Clip
	// Time is the current playback time in seconds.
	Time float32
	// Speed scales Advance. 1 is real time; negative plays backwards.
	Speed float32
	// Loop wraps Time into [0, Length). Without it Time is clamped to [0, Length].
	Loop bool
	// Interpolation overrides the clip's authored mode when OverrideMode is set.
	Interpolation Interpolation
	OverrideMode  bool
}

// NewPlayer creates a real-time, looping player at the start of clip.
func NewPlayer(clip *Clip) *Player {
	return &Player{
		Clip:  clip,
		Speed: 1,
		Loop:  true,
	}
}

// Advance moves the clock by deltaSeconds scaled by Speed.
func (p *Player) Advance(deltaSeconds float32) {
	p.Seek(p.Time + deltaSeconds*p.Speed)
}

// Seek sets the clock, wrapping or clamping it to the clip length.
func (p *Player) Seek(seconds float32) {
	length := p.Clip.Length
	if length <= 0 {
		p.Time = 0
		return
	}

	if p.Loop {
		t := float32(gomath.Mod(float64(seconds), float64(length)))
		if t < 0 {
			t += length
		}
		p.Time = t
		return
	}

	p.Time = min(max(seconds, 0), length)
}

// Finished reports whether a non-looping player has reached an end of the clip.
func (p *Player) Finished() bool {
	if p.Loop {
		return false
	}
	if p.Speed < 0 {
		return p.Time <= 0
	}
	return p.Time >= p.Clip.Length
}

// Context returns the sampling context for the current time.
func (p *Player) Context() Context {
	ctx := p.Clip.ContextAt(p.Time)
	if p.OverrideMode {
		ctx.Interpolation = p.Interpolation
	}
	return ctx
}

// Sample samples the clip at the current time into pose.
// See SamplePose for the seeding precondition.
func (p *Player) Sample(pose []Transform) {
	p.Clip.DecompressPose(p.Context(), pose)
}
