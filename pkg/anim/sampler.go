package anim

import "sync"

// Context carries the per-call playback parameters.
type Context struct {
	// SequenceLength is the sequence duration in seconds.
	SequenceLength float32
	// RelativePos is the normalized position: 0 is the first key, 1 the last.
	// Values outside [0, 1] are clamped.
	RelativePos float32
	// Interpolation selects stepped or smooth blending.
	Interpolation Interpolation
}

// SampleBone writes the sampled value of every non-empty channel of track
// into out. Fields whose channel has no keys are left as they were.
func SampleBone(ctx Context, track *Track, out *Transform) {
	if n := len(track.Translations); n > 0 {
		a, b, alpha := MapTime(ctx.SequenceLength, ctx.RelativePos, n, ctx.Interpolation)
		out.Translation = track.Translations[a].Lerp(track.Translations[b], alpha)
	}

	if n := len(track.Rotations); n > 0 {
		a, b, alpha := MapTime(ctx.SequenceLength, ctx.RelativePos, n, ctx.Interpolation)
		out.Rotation = track.Rotations[a].Slerp(track.Rotations[b], alpha)
	}

	if n := len(track.Scales); n > 0 {
		a, b, alpha := MapTime(ctx.SequenceLength, ctx.RelativePos, n, ctx.Interpolation)
		out.Scale = track.Scales[a].Lerp(track.Scales[b], alpha)
	}
}

// SamplePose samples tracks into pose, where pose[i] belongs to tracks[i].
//
// IMPORTANT: pose must be seeded before the call (usually with the bind pose,
// see BindPose and IdentityPose). Only channels that have keys are written, so
// a bone without rotation keys keeps whatever rotation pose[i] held on entry,
// and bones beyond len(tracks) are not touched at all. Reusing a pose buffer
// across clips without reseeding leaks the previous clip's values into the
// unanimated channels.
//
// SamplePose never allocates and never resizes pose.
func SamplePose(ctx Context, tracks []Track, pose []Transform) {
	for i := range pose {
		if i >= len(tracks) {
			continue
		}
		SampleBone(ctx, &tracks[i], &pose[i])
	}
}

// SampleProvider is SamplePose over a TrackProvider. The same seeding
// precondition applies.
func SampleProvider(ctx Context, p TrackProvider, pose []Transform) {
	for i := range pose {
		track := p.Track(i)
		if track == nil {
			continue
		}
		SampleBone(ctx, track, &pose[i])
	}
}

// SamplePoseParallel splits the bone range of pose into contiguous chunks and
// samples each chunk on its own goroutine. Each goroutine writes a disjoint
// sub-slice of pose, so the result is identical to SamplePose.
// workers <= 1 samples on the calling goroutine.
func SamplePoseParallel(ctx Context, tracks []Track, pose []Transform, workers int) {
	if workers <= 1 || len(pose) < 2 {
		SamplePose(ctx, tracks, pose)
		return
	}
	workers = min(workers, len(pose))
	chunk := (len(pose) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(pose); start += chunk {
		end := min(start+chunk, len(pose))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			// Offset tracks so pose[start+j] still pairs with tracks[start+j]
			var sub []Track
			if start < len(tracks) {
				sub = tracks[start:min(end, len(tracks))]
			}
			SamplePose(ctx, sub, pose[start:end])
		}(start, end)
	}
	wg.Wait()
}
