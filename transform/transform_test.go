package transform_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/viewcore/transform"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d: want %v, got %v", i, want, got)
	}
}

func TestIdentityMatrix(t *testing.T) {
	assert.True(t, transform.Identity().ComputeMatrix().ApproxEqual(mgl32.Ident4()))
}

func TestComputeMatrixOrder(t *testing.T) {
	g := transform.FromXYZ(1, 2, 3)
	g.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	g.Scale = mgl32.Vec3{2, 2, 2}

	point := mgl32.Vec3{1, 0, 0}
	viaMatrix := mgl32.TransformCoordinate(point, g.ComputeMatrix())

	// scale to (2,0,0), rotate about +Y to (0,0,-2), translate.
	assertVec3(t, mgl32.Vec3{1, 2, 1}, viaMatrix)
	assertVec3(t, viaMatrix, g.TransformPoint(point))
}

func TestLookingAt(t *testing.T) {
	g := transform.FromXYZ(0, 0, 10).LookingAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertVec3(t, mgl32.Vec3{0, 0, -1}, g.Forward())

	side := transform.FromXYZ(5, 0, 0).LookingAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, side.Forward())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, side.Rotation.Rotate(mgl32.Vec3{0, 1, 0}))

	same := transform.FromXYZ(1, 1, 1)
	assert.Equal(t, same, same.LookingAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0}), "degenerate target leaves rotation alone")
}
