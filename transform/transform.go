// Package transform holds the world-space placement of entities.
package transform

import "github.com/go-gl/mathgl/mgl32"

// GlobalTransform is an entity's absolute placement in world space.
// Cameras look down their local -Z axis with +Y up.
type GlobalTransform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns a transform at the origin with no rotation and unit scale.
func Identity() GlobalTransform {
	return GlobalTransform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromTranslation returns an identity transform moved to t.
func FromTranslation(t mgl32.Vec3) GlobalTransform {
	g := Identity()
	g.Translation = t
	return g
}

// FromXYZ is FromTranslation for separate coordinates.
func FromXYZ(x, y, z float32) GlobalTransform {
	return FromTranslation(mgl32.Vec3{x, y, z})
}

// LookingAt returns a copy of g rotated so that its -Z axis points at target
// and its +Y axis is as close to up as possible.
func (g GlobalTransform) LookingAt(target, up mgl32.Vec3) GlobalTransform {
	back := g.Translation.Sub(target)
	if back.Len() == 0 {
		return g
	}
	back = back.Normalize()
	right := up.Cross(back)
	if right.Len() == 0 {
		return g
	}
	right = right.Normalize()
	realUp := back.Cross(right)

	g.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, realUp, back).Mat4()).Normalize()
	return g
}

// ComputeMatrix returns the local-to-world matrix: translate * rotate * scale.
func (g GlobalTransform) ComputeMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(g.Translation.X(), g.Translation.Y(), g.Translation.Z()).
		Mul4(g.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(g.Scale.X(), g.Scale.Y(), g.Scale.Z()))
}

// TransformPoint maps a local-space point into world space.
func (g GlobalTransform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return g.Rotation.Rotate(mgl32.Vec3{p.X() * g.Scale.X(), p.Y() * g.Scale.Y(), p.Z() * g.Scale.Z()}).Add(g.Translation)
}

// Forward returns the world-space direction of local -Z.
func (g GlobalTransform) Forward() mgl32.Vec3 {
	return g.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}
