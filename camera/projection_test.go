package camera_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/viewcore/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ndcDepth(m mgl32.Mat4, viewZ float32) float32 {
	return mgl32.TransformCoordinate(mgl32.Vec3{0, 0, viewZ}, m).Z()
}

func TestPerspectiveProjection(t *testing.T) {
	p := camera.DefaultPerspective()
	p.Update(1600, 1200)
	assert.InDelta(t, 4.0/3.0, p.AspectRatio, 1e-6)

	m := p.ProjectionMatrix()
	f := float32(1 / math.Tan(math.Pi/8))
	assert.InDelta(t, f/(4.0/3.0), m.At(0, 0), 1e-5)
	assert.InDelta(t, f, m.At(1, 1), 1e-5)

	assert.InDelta(t, 1, ndcDepth(m, -0.1), 1e-5, "near plane maps to 1")
	assert.InDelta(t, 0.01, ndcDepth(m, -10), 1e-6)
	assert.Less(t, ndcDepth(m, -1e6), float32(1e-6), "far away approaches 0")

	assert.Equal(t, camera.Distance, p.DepthCalculation())
	assert.Equal(t, float32(0.1), p.Near())
	assert.Equal(t, float32(1000), p.Far())
}

func TestOrthographicUpdate(t *testing.T) {
	type extents struct{ left, right, bottom, top float32 }

	tests := []struct {
		name   string
		mode   camera.ScalingMode
		origin camera.WindowOrigin
		want   extents
	}{
		{"window size centered", camera.ScalingWindowSize, camera.OriginCenter, extents{-400, 400, -300, 300}},
		{"window size bottom left", camera.ScalingWindowSize, camera.OriginBottomLeft, extents{0, 800, 0, 600}},
		{"fixed vertical centered", camera.ScalingFixedVertical, camera.OriginCenter, extents{-4.0 / 3, 4.0 / 3, -1, 1}},
		{"fixed vertical bottom left", camera.ScalingFixedVertical, camera.OriginBottomLeft, extents{0, 4.0 / 3, 0, 1}},
		{"fixed horizontal centered", camera.ScalingFixedHorizontal, camera.OriginCenter, extents{-1, 1, -0.75, 0.75}},
		{"fixed horizontal bottom left", camera.ScalingFixedHorizontal, camera.OriginBottomLeft, extents{0, 1, 0, 0.75}},
		{"none keeps extents", camera.ScalingNone, camera.OriginCenter, extents{-1, 1, -1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := camera.DefaultOrthographic()
			p.ScalingMode = tt.mode
			p.WindowOrigin = tt.origin
			p.Update(800, 600)

			got := extents{p.Left, p.Right, p.Bottom, p.Top}
			assert.InDelta(t, tt.want.left, got.left, 1e-5)
			assert.InDelta(t, tt.want.right, got.right, 1e-5)
			assert.InDelta(t, tt.want.bottom, got.bottom, 1e-5)
			assert.InDelta(t, tt.want.top, got.top, 1e-5)
		})
	}
}

func TestOrthographicMatrix(t *testing.T) {
	p := camera.DefaultOrthographic()
	p.Update(800, 600)
	m := p.ProjectionMatrix()

	corner := mgl32.TransformCoordinate(mgl32.Vec3{400, 300, 0}, m)
	assert.InDelta(t, 1, corner.X(), 1e-5)
	assert.InDelta(t, 1, corner.Y(), 1e-5)

	assert.InDelta(t, 1, ndcDepth(m, 0), 1e-5, "near plane maps to 1")
	assert.InDelta(t, 0, ndcDepth(m, -1000), 1e-5, "far plane maps to 0")

	p.Scale = 2
	zoomed := mgl32.TransformCoordinate(mgl32.Vec3{400, 300, 0}, p.ProjectionMatrix())
	assert.InDelta(t, 0.5, zoomed.X(), 1e-5, "scale widens the view")
}

func TestParseProjectionEnums(t *testing.T) {
	mode, err := camera.ParseScalingMode("fixed_vertical")
	require.NoError(t, err)
	assert.Equal(t, camera.ScalingFixedVertical, mode)
	assert.Equal(t, "fixed_vertical", mode.String())

	mode, err = camera.ParseScalingMode("")
	require.NoError(t, err)
	assert.Equal(t, camera.ScalingWindowSize, mode)

	_, err = camera.ParseScalingMode("stretch")
	assert.Error(t, err)

	origin, err := camera.ParseWindowOrigin("bottom_left")
	require.NoError(t, err)
	assert.Equal(t, camera.OriginBottomLeft, origin)
	_, err = camera.ParseWindowOrigin("top_left")
	assert.Error(t, err)

	depth, err := camera.ParseDepthCalculation("z_difference")
	require.NoError(t, err)
	assert.Equal(t, camera.ZDifference, depth)
	assert.Equal(t, "z_difference", depth.String())
	_, err = camera.ParseDepthCalculation("euclid")
	assert.Error(t, err)
}
