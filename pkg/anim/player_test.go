package anim

import "testing"

func TestPlayerLoops(t *testing.T) {
	p := NewPlayer(testClip())

	p.Advance(2.5)
	if !near(p.Time, 0.5) {
		t.Errorf("Time after 2.5s on a 2s loop = %v, want 0.5", p.Time)
	}

	p.Advance(-1)
	if !near(p.Time, 1.5) {
		t.Errorf("Time after rewinding 1s = %v, want 1.5", p.Time)
	}
	if p.Finished() {
		t.Error("looping player should never finish")
	}
}

func TestPlayerClampsWithoutLoop(t *testing.T) {
	p := NewPlayer(testClip())
	p.Loop = false

	p.Advance(5)
	if p.Time != 2 {
		t.Errorf("Time = %v, want clamped to 2", p.Time)
	}
	if !p.Finished() {
		t.Error("expected Finished at end of clip")
	}
	if got := p.Context().RelativePos; got != 1 {
		t.Errorf("RelativePos = %v, want 1", got)
	}

	p.Seek(-3)
	if p.Time != 0 {
		t.Errorf("Time = %v, want clamped to 0", p.Time)
	}
}

func TestPlayerSpeedAndOverride(t *testing.T) {
	clip := testClip()
	p := NewPlayer(clip)
	p.Speed = 0.5
	p.Interpolation = Step
	p.OverrideMode = true

	p.Advance(1)
	ctx := p.Context()
	if !near(ctx.RelativePos, 0.25) {
		t.Errorf("RelativePos = %v, want 0.25", ctx.RelativePos)
	}
	if ctx.Interpolation != Step {
		t.Errorf("Interpolation = %v, want step override", ctx.Interpolation)
	}
	if ctx.SequenceLength != clip.Length {
		t.Errorf("SequenceLength = %v, want %v", ctx.SequenceLength, clip.Length)
	}
}

func TestPlayerSample(t *testing.T) {
	p := NewPlayer(testClip())
	p.Seek(2)
	p.Loop = false

	pose := make([]Transform, 2)
	IdentityPose(pose)
	p.Sample(pose)

	// Loop was on during Seek, so 2s wrapped to 0
	if pose[1].Translation.Y != 1 {
		t.Errorf("arm translation = %v, want first key", pose[1].Translation)
	}
}
