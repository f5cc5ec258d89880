// Package clip reads and writes hand-authored animation clips in YAML.
//
//	name: wave
//	length: 1.5
//	interpolation: linear
//	bones:
//	  - name: arm
//	    translations: [[0, 0, 0], [0, 1, 0]]
//	    rotations: [[0, 0, 0, 1], [0, 0, 0.7071, 0.7071]]  # x, y, z, w
//	    scales: [[1, 1, 1]]
//	  - name: hand
//	    axis_angles: [[0, 0, 1, 0], [0, 0, 1, 90]]  # axis x, y, z, degrees
//
// Keys of a channel are spread evenly across the clip length. A bone sets
// either rotations or axis_angles, not both.
package clip

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bonecodec/pkg/anim"
	"github.com/Faultbox/bonecodec/pkg/math"
)

// File is the YAML document layout.
type File struct {
	Name          string  `yaml:"name"`
	Length        float32 `yaml:"length"`
	Interpolation string  `yaml:"interpolation,omitempty"`
	Bones         []Bone  `yaml:"bones"`
}

// Bone is one track in the YAML document.
type Bone struct {
	Name         string       `yaml:"name,omitempty"`
	Translations [][3]float32 `yaml:"translations,omitempty,flow"`
	Rotations    [][4]float32 `yaml:"rotations,omitempty,flow"`
	AxisAngles   [][4]float32 `yaml:"axis_angles,omitempty,flow"`
	Scales       [][3]float32 `yaml:"scales,omitempty,flow"`
}

// Load reads a clip from a YAML file.
func Load(path string) (*anim.Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding clip %s: %w", path, err)
	}
	return c, nil
}

// Decode reads a clip from r.
func Decode(r io.Reader) (*anim.Clip, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return f.Clip()
}

// Clip converts the document into an anim.Clip. Rotations are normalized.
func (f *File) Clip() (*anim.Clip, error) {
	if f.Length < 0 {
		return nil, fmt.Errorf("negative clip length %v", f.Length)
	}
	mode, err := anim.ParseInterpolation(f.Interpolation)
	if err != nil {
		return nil, err
	}

	c := &anim.Clip{
		Name:          f.Name,
		Length:        f.Length,
		Interpolation: mode,
		BoneNames:     make([]string, len(f.Bones)),
		Tracks:        make(anim.Tracks, len(f.Bones)),
	}

	for i, b := range f.Bones {
		c.BoneNames[i] = b.Name
		track := &c.Tracks[i]

		if len(b.Translations) > 0 {
			track.Translations = make([]math.Vec3, len(b.Translations))
			for k, v := range b.Translations {
				track.Translations[k] = math.Vec3FromArray(v)
			}
		}
		if len(b.Rotations) > 0 {
			track.Rotations = make([]math.Quat, len(b.Rotations))
			for k, v := range b.Rotations {
				q := math.QuatFromArray(v)
				if q.Length() < 0.0001 {
					return nil, fmt.Errorf("bone %d (%s): rotation key %d is zero", i, b.Name, k)
				}
				track.Rotations[k] = q.Normalize()
			}
		}
		if len(b.AxisAngles) > 0 {
			if len(b.Rotations) > 0 {
				return nil, fmt.Errorf("bone %d (%s): both rotations and axis_angles set", i, b.Name)
			}
			track.Rotations = make([]math.Quat, len(b.AxisAngles))
			for k, v := range b.AxisAngles {
				q, err := axisAngle(v)
				if err != nil {
					return nil, fmt.Errorf("bone %d (%s): axis_angles key %d: %w", i, b.Name, k, err)
				}
				track.Rotations[k] = q
			}
		}
		if len(b.Scales) > 0 {
			track.Scales = make([]math.Vec3, len(b.Scales))
			for k, v := range b.Scales {
				track.Scales[k] = math.Vec3FromArray(v)
			}
		}
	}

	return c, nil
}

// axisAngle converts an [x, y, z, degrees] key to a unit quaternion.
func axisAngle(v [4]float32) (math.Quat, error) {
	axis := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	l := axis.Length()
	if l < 0.0001 {
		return math.Quat{}, fmt.Errorf("zero rotation axis")
	}
	rad := v[3] * gomath.Pi / 180
	return math.QuatFromAxisAngle(axis.Scale(1/l), rad), nil
}

// FromClip converts an anim.Clip back into its YAML layout.
func FromClip(c *anim.Clip) *File {
	f := &File{
		Name:          c.Name,
		Length:        c.Length,
		Interpolation: c.Interpolation.String(),
		Bones:         make([]Bone, len(c.Tracks)),
	}
	for i := range c.Tracks {
		t := &c.Tracks[i]
		b := &f.Bones[i]
		b.Name = c.BoneName(i)
		for _, v := range t.Translations {
			b.Translations = append(b.Translations, v.Array())
		}
		for _, q := range t.Rotations {
			b.Rotations = append(b.Rotations, q.Array())
		}
		for _, v := range t.Scales {
			b.Scales = append(b.Scales, v.Array())
		}
	}
	return f
}

// Encode writes c as YAML.
func Encode(w io.Writer, c *anim.Clip) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromClip(c)); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes c to a YAML file.
func Save(path string, c *anim.Clip) error {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
