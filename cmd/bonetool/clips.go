package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bonecodec/internal/clip"
	"github.com/Faultbox/bonecodec/internal/config"
	"github.com/Faultbox/bonecodec/internal/gltfclip"
	"github.com/Faultbox/bonecodec/pkg/anim"
)

// importFlags registers per-command glTF selection flags over cfg.Import.
func importFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.IntVar(&cfg.Import.Animation, "anim", cfg.Import.Animation, "glTF animation index")
	fs.StringVar(&cfg.Import.AnimationName, "anim-name", cfg.Import.AnimationName, "glTF animation name")
	fs.IntVar(&cfg.Import.Skin, "skin", cfg.Import.Skin, "glTF skin defining bone order (-1 = node order)")
}

// loadClip picks a loader by file extension.
func loadClip(path string, cfg *config.Config) (*anim.Clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return gltfclip.Load(path, gltfclip.Options{
			Animation:     cfg.Import.Animation,
			AnimationName: cfg.Import.AnimationName,
			Skin:          cfg.Import.Skin,
			FPS:           cfg.Playback.FPS,
		})
	case ".yaml", ".yml":
		return clip.Load(path)
	default:
		return nil, fmt.Errorf("unsupported clip format: %s", path)
	}
}

// newPlayer builds a player honoring the playback config.
func newPlayer(c *anim.Clip, cfg *config.Config) (*anim.Player, error) {
	mode, override, err := cfg.Playback.InterpolationOverride()
	if err != nil {
		return nil, err
	}
	p := anim.NewPlayer(c)
	p.Loop = cfg.Playback.Loop
	p.Speed = cfg.Playback.Speed
	p.Interpolation = mode
	p.OverrideMode = override
	return p, nil
}

// sampleContext resolves the sample command's position flags. A time in
// seconds is clamped to the clip rather than wrapped, so the clip length
// addresses the last key. pos, when set, wins over at.
func sampleContext(p *anim.Player, pos, at float64) anim.Context {
	if at >= 0 {
		p.Loop = false
		p.Seek(float32(at))
	}
	ctx := p.Context()
	if pos >= 0 {
		ctx.RelativePos = float32(pos)
	}
	return ctx
}

// samplePose seeds a pose with identity and samples ctx into it.
func samplePose(c *anim.Clip, ctx anim.Context, workers int) []anim.Transform {
	pose := make([]anim.Transform, c.NumTracks())
	anim.IdentityPose(pose)
	anim.SamplePoseParallel(ctx, c.Tracks, pose, workers)
	return pose
}

// frameTimes returns n evenly spaced times covering [0, length].
// n <= 0 derives the count from fps.
func frameTimes(length float32, n, fps int) []float32 {
	if n <= 0 {
		n = int(length*float32(fps)) + 1
	}
	if n == 1 || length <= 0 {
		return []float32{0}
	}
	times := make([]float32, n)
	for i := range times {
		times[i] = length * float32(i) / float32(n-1)
	}
	return times
}

// selectBones resolves an optional bone name filter into indices.
func selectBones(c *anim.Clip, bone string) ([]int, error) {
	if bone == "" {
		idx := make([]int, c.NumTracks())
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	i := c.BoneIndex(bone)
	if i < 0 {
		return nil, fmt.Errorf("bone %q not found", bone)
	}
	return []int{i}, nil
}

func boneLabel(c *anim.Clip, i int) string {
	if name := c.BoneName(i); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", i)
}

func printTransform(w io.Writer, label string, t anim.Transform) {
	fmt.Fprintf(w, "  %-16s T(%8.4f %8.4f %8.4f)  R(%7.4f %7.4f %7.4f %7.4f)  S(%6.3f %6.3f %6.3f)\n",
		label,
		t.Translation.X, t.Translation.Y, t.Translation.Z,
		t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
		t.Scale.X, t.Scale.Y, t.Scale.Z)
}

func printMatrix(w io.Writer, label string, m mgl32.Mat4) {
	for r := 0; r < 4; r++ {
		row := m.Row(r)
		fmt.Fprintf(w, "  %-16s [%8.4f %8.4f %8.4f %8.4f]\n", label, row[0], row[1], row[2], row[3])
		label = ""
	}
}

// printPose prints the selected bones of pose, as local matrices when
// matrices is non-nil. matrices must be as long as pose.
func printPose(w io.Writer, c *anim.Clip, bones []int, pose []anim.Transform, matrices []mgl32.Mat4) {
	if matrices != nil {
		anim.PoseMatrices(matrices, pose)
	}
	for _, i := range bones {
		if matrices != nil {
			printMatrix(w, boneLabel(c, i), matrices[i])
		} else {
			printTransform(w, boneLabel(c, i), pose[i])
		}
	}
}

// matrixBuffer returns storage for n bone matrices when enabled.
func matrixBuffer(enabled bool, n int) []mgl32.Mat4 {
	if !enabled {
		return nil
	}
	return make([]mgl32.Mat4, n)
}
