package anim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bonecodec/pkg/math"
)

// Transform is a decomposed local bone transform.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// IdentityTransform returns the transform with no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One(),
	}
}

// IdentityPose seeds every transform in pose with IdentityTransform.
func IdentityPose(pose []Transform) {
	id := IdentityTransform()
	for i := range pose {
		pose[i] = id
	}
}

// BindPose seeds pose from bind. Bones beyond len(bind) get IdentityTransform.
func BindPose(pose, bind []Transform) {
	n := copy(pose, bind)
	if n < len(pose) {
		IdentityPose(pose[n:])
	}
}

// Matrix composes translation * rotation * scale into a column-major matrix
// ready for upload as a bone uniform.
func (t Transform) Matrix() mgl32.Mat4 {
	r := mgl32.Quat{W: t.Rotation.W, V: mgl32.Vec3{t.Rotation.X, t.Rotation.Y, t.Rotation.Z}}.Normalize()
	return mgl32.Translate3D(t.Translation.X, t.Translation.Y, t.Translation.Z).
		Mul4(r.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// PoseMatrices writes the matrix of each transform in pose to dst.
// Only min(len(pose), len(dst)) entries are written.
func PoseMatrices(dst []mgl32.Mat4, pose []Transform) {
	n := min(len(dst), len(pose))
	for i := 0; i < n; i++ {
		dst[i] = pose[i].Matrix()
	}
}
