package gltfclip

import (
	gomath "math"
	"sort"
)

// frameCount is the number of evenly spaced frames covering [0, length] at
// fps, both ends included.
func frameCount(length float32, fps int) int {
	if length <= 0 || fps <= 0 {
		return 1
	}
	return max(int(gomath.Round(float64(length)*float64(fps)))+1, 2)
}

// evenlySpaced reports whether key k sits at length*k/(n-1) for every key.
func evenlySpaced(times []float32, length float32) bool {
	n := len(times)
	if n < 2 || length <= 0 {
		return true
	}
	eps := 1e-4 * max(length, 1)
	for k, t := range times {
		want := length * float32(k) / float32(n-1)
		if gomath.Abs(float64(t-want)) > float64(eps) {
			return false
		}
	}
	return true
}

// resample evaluates keys at frames evenly spaced times over [0, length].
// Between two keys the value is blended, or held at the earlier key when
// step is set. Before the first key and after the last, the nearest key is
// held.
func resample[T any](times []float32, values []T, length float32, frames int, step bool, blend func(a, b T, t float32) T) []T {
	n := min(len(times), len(values))
	if n == 0 {
		return nil
	}

	out := make([]T, frames)
	for f := range out {
		var t float32
		if frames > 1 {
			t = length * float32(f) / float32(frames-1)
		}

		hi := sort.Search(n, func(k int) bool { return times[k] > t })
		switch {
		case hi == 0:
			out[f] = values[0]
		case hi == n:
			out[f] = values[n-1]
		case step:
			out[f] = values[hi-1]
		default:
			lo := hi - 1
			alpha := (t - times[lo]) / (times[hi] - times[lo])
			out[f] = blend(values[lo], values[hi], alpha)
		}
	}
	return out
}
