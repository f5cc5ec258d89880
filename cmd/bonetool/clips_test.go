package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bonecodec/internal/config"
	"github.com/Faultbox/bonecodec/pkg/anim"
	"github.com/Faultbox/bonecodec/pkg/math"
)

var wavePath = filepath.Join("..", "..", "internal", "clip", "testdata", "wave.yaml")

func TestFrameTimes(t *testing.T) {
	tests := []struct {
		name   string
		length float32
		n, fps int
		want   []float32
	}{
		{"explicit count", 2, 5, 30, []float32{0, 0.5, 1, 1.5, 2}},
		{"from fps", 1, 0, 4, []float32{0, 0.25, 0.5, 0.75, 1}},
		{"single frame", 3, 1, 30, []float32{0}},
		{"zero length", 0, 10, 30, []float32{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frameTimes(tt.length, tt.n, tt.fps)
			if len(got) != len(tt.want) {
				t.Fatalf("frameTimes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("frameTimes[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadClipByExtension(t *testing.T) {
	cfg := config.Default()

	c, err := loadClip(wavePath, cfg)
	if err != nil {
		t.Fatalf("loadClip(yaml): %v", err)
	}
	if c.Name != "wave" {
		t.Errorf("Name = %q, want wave", c.Name)
	}

	cfg.Import.AnimationName = "Blink"
	c, err = loadClip(filepath.Join("..", "..", "internal", "gltfclip", "testdata", "rig.gltf"), cfg)
	if err != nil {
		t.Fatalf("loadClip(gltf): %v", err)
	}
	if c.Interpolation != anim.Step {
		t.Errorf("Blink interpolation = %v, want step", c.Interpolation)
	}

	if _, err := loadClip("clip.fbx", cfg); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestNewPlayerOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Playback.Interpolation = "step"
	cfg.Playback.Loop = false

	p, err := newPlayer(&anim.Clip{Length: 1}, cfg)
	if err != nil {
		t.Fatalf("newPlayer: %v", err)
	}
	if p.Loop || !p.OverrideMode || p.Context().Interpolation != anim.Step {
		t.Errorf("player did not pick up playback config: %+v", p)
	}
}

func TestSelectBones(t *testing.T) {
	c := &anim.Clip{BoneNames: []string{"root", "arm"}, Tracks: make(anim.Tracks, 2)}

	all, err := selectBones(c, "")
	if err != nil || len(all) != 2 {
		t.Errorf("selectBones(\"\") = %v, %v", all, err)
	}
	one, err := selectBones(c, "arm")
	if err != nil || len(one) != 1 || one[0] != 1 {
		t.Errorf("selectBones(arm) = %v, %v", one, err)
	}
	if _, err := selectBones(c, "leg"); err == nil {
		t.Error("expected error for unknown bone")
	}
}

func TestPrintTransform(t *testing.T) {
	var buf bytes.Buffer
	printTransform(&buf, "root", anim.IdentityTransform())
	out := buf.String()
	if !strings.Contains(out, "root") || !strings.Contains(out, "1.0000") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSampleContextClampsTime(t *testing.T) {
	cfg := config.Default()
	c, err := loadClip(wavePath, cfg)
	if err != nil {
		t.Fatalf("loadClip: %v", err)
	}

	tests := []struct {
		name    string
		pos, at float64
		wantPos float32
		wantZ   float32
	}{
		{"clip length is the last key", -1, 2, 1, 4},
		{"past the end clamps", -1, 7, 1, 4},
		{"inside the clip", -1, 1, 0.5, 2},
		{"pos wins over time", 0, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newPlayer(c, cfg)
			if err != nil {
				t.Fatalf("newPlayer: %v", err)
			}
			ctx := sampleContext(p, tt.pos, tt.at)
			if ctx.RelativePos != tt.wantPos {
				t.Errorf("RelativePos = %v, want %v", ctx.RelativePos, tt.wantPos)
			}
			pose := samplePose(c, ctx, 1)
			if pose[0].Translation.Z != tt.wantZ {
				t.Errorf("root z = %v, want %v", pose[0].Translation.Z, tt.wantZ)
			}
		})
	}
}

func TestSampleContextKeepsLoopWithoutTime(t *testing.T) {
	cfg := config.Default()
	p, err := newPlayer(&anim.Clip{Length: 2}, cfg)
	if err != nil {
		t.Fatalf("newPlayer: %v", err)
	}
	ctx := sampleContext(p, 0.25, -1)
	if !p.Loop || ctx.RelativePos != 0.25 {
		t.Errorf("loop = %v, pos = %v; want loop kept and pos 0.25", p.Loop, ctx.RelativePos)
	}
}

func TestPrintPoseMatrices(t *testing.T) {
	c := &anim.Clip{BoneNames: []string{"root", "arm"}, Tracks: make(anim.Tracks, 2)}
	pose := make([]anim.Transform, 2)
	anim.IdentityPose(pose)
	pose[1].Translation = math.Vec3{X: 1, Y: 2, Z: 3}

	matrices := matrixBuffer(true, len(pose))
	var buf bytes.Buffer
	printPose(&buf, c, []int{1}, pose, matrices)

	if matrices[1] != mgl32.Translate3D(1, 2, 3) {
		t.Errorf("matrix = %v, want translation (1, 2, 3)", matrices[1])
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 matrix rows:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "arm") || !strings.Contains(lines[0], "1.0000") || !strings.Contains(lines[0], "]") {
		t.Errorf("first row = %q", lines[0])
	}
	// Translation lives in the last column
	if !strings.HasSuffix(strings.TrimSpace(lines[2]), "3.0000]") {
		t.Errorf("third row = %q, want z translation in the last column", lines[2])
	}
	if strings.Contains(buf.String(), "root") {
		t.Errorf("unselected bone printed: %q", buf.String())
	}
}

func TestPrintPoseTransforms(t *testing.T) {
	c := &anim.Clip{BoneNames: []string{"root"}, Tracks: make(anim.Tracks, 1)}
	pose := []anim.Transform{anim.IdentityTransform()}

	if matrixBuffer(false, 1) != nil {
		t.Error("matrixBuffer(false) should be nil")
	}
	var buf bytes.Buffer
	printPose(&buf, c, []int{0}, pose, nil)
	if !strings.Contains(buf.String(), "T(") {
		t.Errorf("expected TRS output, got %q", buf.String())
	}
}
