package anim

import "math"

// MapTime converts a relative position into the indices of the two keys that
// bracket it and the blend factor between them.
//
// relativePos is clamped, not validated: values <= 0 select the first key and
// values >= 1 select the last, so small overshoot from an accumulating
// playback clock never produces an out-of-range index. For keyCount < 2 the
// result is always (0, 0, 0). Otherwise both indices lie in [0, keyCount-1],
// indexA <= indexB, and alpha lies in [0, 1). Step mode forces alpha to 0.
//
// sequenceLength is accepted for parity with the playback context; keys are
// evenly spaced so the mapping depends only on relativePos.
func MapTime(sequenceLength, relativePos float32, keyCount int, mode Interpolation) (indexA, indexB int, alpha float32) {
	if keyCount < 2 {
		return 0, 0, 0
	}

	// Before first key
	if relativePos <= 0 {
		return 0, 0, 0
	}

	last := keyCount - 1

	// After last key: the final key has no duration
	if relativePos >= 1 {
		return last, last, 0
	}

	keyPos := relativePos * float32(last)
	keyPosFloor := float32(math.Floor(float64(keyPos)))

	indexA = min(int(keyPosFloor), last)
	if mode != Step {
		alpha = keyPos - keyPosFloor
	}
	indexB = min(indexA+1, last)
	return indexA, indexB, alpha
}
