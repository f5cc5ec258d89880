// Package gltfclip imports glTF 2.0 animations as bone tracks.
//
// Bone order follows the joint list of the selected skin, so track i drives
// joint i of that skin. With no skin selected, track i drives node i.
// Channels whose keys already sit on an even grid spanning the whole
// animation are kept as they are. Every other channel is resampled at a
// fixed rate over the animation length, holding its first and last keys
// outside its own time range.
package gltfclip

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/bonecodec/internal/logger"
	"github.com/Faultbox/bonecodec/pkg/anim"
	"github.com/Faultbox/bonecodec/pkg/math"
)

// ErrNoAnimations is returned for documents without animations.
var ErrNoAnimations = errors.New("document has no animations")

// Options selects what to import.
type Options struct {
	// Animation is the animation index, used when AnimationName is empty.
	Animation int
	// AnimationName selects an animation by name.
	AnimationName string
	// Skin selects the skin whose joints define bone order. Negative values,
	// or documents without skins, use node order.
	Skin int
	// FPS is the resampling rate for unevenly keyed channels. Zero or less
	// uses DefaultFPS.
	FPS int
}

// DefaultFPS is the resampling rate used when Options.FPS is unset.
const DefaultFPS = 30

// Load opens a .gltf or .glb file and imports one animation.
func Load(path string, opts Options) (*anim.Clip, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return FromDocument(doc, opts)
}

// AnimationNames lists the animations of a document in index order.
func AnimationNames(doc *gltf.Document) []string {
	names := make([]string, len(doc.Animations))
	for i, a := range doc.Animations {
		names[i] = animationName(a, i)
	}
	return names
}

// FromDocument imports one animation of an already decoded document.
func FromDocument(doc *gltf.Document, opts Options) (*anim.Clip, error) {
	if len(doc.Animations) == 0 {
		return nil, ErrNoAnimations
	}

	animIdx, err := selectAnimation(doc, opts)
	if err != nil {
		return nil, err
	}
	a := doc.Animations[animIdx]

	log := logger.Named("gltf").With(zap.String("animation", animationName(a, animIdx)))

	bones, names := boneMapping(doc, opts.Skin)
	clip := &anim.Clip{
		Name:      animationName(a, animIdx),
		BoneNames: names,
		Tracks:    make(anim.Tracks, len(names)),
	}

	channels := make([]channel, 0, len(a.Channels))
	allStep := true

	for i, ch := range a.Channels {
		if ch.Target.Node == nil {
			continue
		}
		bone, ok := bones[*ch.Target.Node]
		if !ok {
			log.Debug("skipping channel for node outside skeleton",
				zap.Int("channel", i), zap.Uint32("node", *ch.Target.Node))
			continue
		}

		c, ok, err := readChannel(doc, a, ch, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		c.bone = bone

		if c.interp == gltf.InterpolationCubicSpline {
			log.Debug("cubic spline tangents dropped", zap.Int("channel", i))
		}
		if c.interp != gltf.InterpolationStep {
			allStep = false
		}
		if n := len(c.times); n > 0 {
			clip.Length = max(clip.Length, c.times[n-1])
		}
		channels = append(channels, c)
	}

	if len(channels) > 0 && allStep {
		clip.Interpolation = anim.Step
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	frames := frameCount(clip.Length, fps)
	resampled := 0

	for _, c := range channels {
		// Keys already on an even grid over the whole clip sample correctly as
		// they are, unless a stepped channel sits in an interpolated clip.
		keep := evenlySpaced(c.times, clip.Length) &&
			(c.interp != gltf.InterpolationStep || clip.Interpolation == anim.Step)
		if !keep {
			resampled++
		}

		track := &clip.Tracks[c.bone]
		step := c.interp == gltf.InterpolationStep
		switch c.path {
		case gltf.TRSTranslation:
			track.Translations = toVec3(c.vec3)
			if !keep {
				track.Translations = resample(c.times, track.Translations, clip.Length, frames, step, math.Vec3.Lerp)
			}
		case gltf.TRSRotation:
			track.Rotations = toQuat(c.quat)
			if !keep {
				track.Rotations = resample(c.times, track.Rotations, clip.Length, frames, step, math.Quat.Slerp)
			}
		case gltf.TRSScale:
			track.Scales = toVec3(c.vec3)
			if !keep {
				track.Scales = resample(c.times, track.Scales, clip.Length, frames, step, math.Vec3.Lerp)
			}
		}
	}

	log.Info("imported animation",
		zap.Int("channels", len(channels)),
		zap.Int("resampled", resampled),
		zap.Int("bones", len(names)),
		zap.Float32("length", clip.Length),
		zap.Stringer("interpolation", clip.Interpolation))

	return clip, nil
}

// channel holds one TRS channel as read from the document.
type channel struct {
	bone   int
	path   gltf.TRSProperty
	interp gltf.Interpolation
	times  []float32
	vec3   [][3]float32
	quat   [][4]float32
}

// readChannel reads the input times and output values of a channel. ok is
// false for channels that do not animate a TRS property.
func readChannel(doc *gltf.Document, a *gltf.Animation, ch *gltf.Channel, i int) (c channel, ok bool, err error) {
	switch ch.Target.Path {
	case gltf.TRSTranslation, gltf.TRSRotation, gltf.TRSScale:
	default:
		// Morph target weights are not bone channels
		return c, false, nil
	}

	if ch.Sampler == nil || int(*ch.Sampler) >= len(a.Samplers) {
		return c, false, errors.Errorf("channel %d: invalid sampler", i)
	}
	sampler := a.Samplers[*ch.Sampler]
	if sampler.Input == nil || int(*sampler.Input) >= len(doc.Accessors) {
		return c, false, errors.Errorf("channel %d: invalid input accessor", i)
	}
	if sampler.Output == nil || int(*sampler.Output) >= len(doc.Accessors) {
		return c, false, errors.Errorf("channel %d: invalid output accessor", i)
	}
	output := doc.Accessors[*sampler.Output]
	cubic := sampler.Interpolation == gltf.InterpolationCubicSpline

	c.path = ch.Target.Path
	c.interp = sampler.Interpolation
	c.times, err = readTimes(doc, doc.Accessors[*sampler.Input])
	if err != nil {
		return c, false, errors.Wrapf(err, "channel %d: failed to read key times", i)
	}

	switch c.path {
	case gltf.TRSTranslation, gltf.TRSScale:
		values, err := modeler.ReadPosition(doc, output, nil)
		if err != nil {
			return c, false, errors.Wrapf(err, "channel %d: failed to read %s", i, pathName(c.path))
		}
		c.vec3 = keyValues(values, cubic)
		c.times = c.times[:min(len(c.times), len(c.vec3))]
	case gltf.TRSRotation:
		values, err := modeler.ReadTangent(doc, output, nil)
		if err != nil {
			return c, false, errors.Wrapf(err, "channel %d: failed to read rotations", i)
		}
		c.quat = keyValues(values, cubic)
		c.times = c.times[:min(len(c.times), len(c.quat))]
	}
	return c, true, nil
}

// readTimes reads a scalar float input accessor.
func readTimes(doc *gltf.Document, acr *gltf.Accessor) ([]float32, error) {
	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	times, ok := data.([]float32)
	if !ok {
		return nil, errors.Errorf("input accessor holds %T, want []float32", data)
	}
	for k := 1; k < len(times); k++ {
		if times[k] < times[k-1] {
			return nil, errors.Errorf("key time %d (%v) before key time %d (%v)", k, times[k], k-1, times[k-1])
		}
	}
	return times, nil
}

func pathName(p gltf.TRSProperty) string {
	if p == gltf.TRSScale {
		return "scales"
	}
	return "translations"
}

func selectAnimation(doc *gltf.Document, opts Options) (int, error) {
	if opts.AnimationName != "" {
		for i, a := range doc.Animations {
			if a.Name == opts.AnimationName {
				return i, nil
			}
		}
		return 0, errors.Errorf("animation %q not found", opts.AnimationName)
	}
	if opts.Animation < 0 || opts.Animation >= len(doc.Animations) {
		return 0, errors.Errorf("animation index %d out of range [0, %d)", opts.Animation, len(doc.Animations))
	}
	return opts.Animation, nil
}

// boneMapping maps glTF node indices to bone indices and names the bones.
func boneMapping(doc *gltf.Document, skin int) (map[uint32]int, []string) {
	if skin >= 0 && skin < len(doc.Skins) {
		joints := doc.Skins[skin].Joints
		bones := make(map[uint32]int, len(joints))
		names := make([]string, len(joints))
		for i, node := range joints {
			bones[node] = i
			names[i] = nodeName(doc, node)
		}
		return bones, names
	}

	bones := make(map[uint32]int, len(doc.Nodes))
	names := make([]string, len(doc.Nodes))
	for i := range doc.Nodes {
		bones[uint32(i)] = i
		names[i] = nodeName(doc, uint32(i))
	}
	return bones, names
}

// keyValues drops the in and out tangents of cubic spline output, which
// stores each key as (in-tangent, value, out-tangent).
func keyValues[T any](values []T, cubic bool) []T {
	if !cubic {
		return values
	}
	keys := make([]T, len(values)/3)
	for k := range keys {
		keys[k] = values[3*k+1]
	}
	return keys
}

func toVec3(values [][3]float32) []math.Vec3 {
	if len(values) == 0 {
		return nil
	}
	out := make([]math.Vec3, len(values))
	for i, v := range values {
		out[i] = math.Vec3FromArray(v)
	}
	return out
}

func toQuat(values [][4]float32) []math.Quat {
	if len(values) == 0 {
		return nil
	}
	out := make([]math.Quat, len(values))
	for i, v := range values {
		out[i] = math.QuatFromArray(v).Normalize()
	}
	return out
}

func nodeName(doc *gltf.Document, node uint32) string {
	if int(node) < len(doc.Nodes) && doc.Nodes[node].Name != "" {
		return doc.Nodes[node].Name
	}
	return fmt.Sprintf("node_%d", node)
}

func animationName(a *gltf.Animation, index int) string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("animation_%d", index)
}
