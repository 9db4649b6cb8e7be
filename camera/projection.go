package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraProjection is implemented by projection components. Update is called
// with the logical size of the camera's target whenever it may have changed.
type CameraProjection interface {
	Update(width, height float32)
	ProjectionMatrix() mgl32.Mat4
	DepthCalculation() DepthCalculation
	Near() float32
	Far() float32
}

// PerspectiveProjection is a right-handed, infinite, reverse-Z perspective
// projection. Far is only reported to the camera; the matrix has no far plane.
type PerspectiveProjection struct {
	Fov         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

// DefaultPerspective returns a 45° projection with near 0.1 and far 1000.
func DefaultPerspective() PerspectiveProjection {
	return PerspectiveProjection{
		Fov:         math.Pi / 4,
		AspectRatio: 1,
		NearPlane:   0.1,
		FarPlane:    1000,
	}
}

func (p *PerspectiveProjection) Update(width, height float32) {
	p.AspectRatio = width / height
}

// ProjectionMatrix maps view-space depth d in front of the camera to NDC depth
// NearPlane/d, so the near plane lands on 1 and infinity on 0.
func (p *PerspectiveProjection) ProjectionMatrix() mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(p.Fov)/2))
	return mgl32.Mat4{
		f / p.AspectRatio, 0, 0, 0,
		0, f, 0, 0,
		0, 0, 0, -1,
		0, 0, p.NearPlane, 0,
	}
}

func (p *PerspectiveProjection) DepthCalculation() DepthCalculation { return Distance }
func (p *PerspectiveProjection) Near() float32                      { return p.NearPlane }
func (p *PerspectiveProjection) Far() float32                       { return p.FarPlane }

// WindowOrigin picks where an orthographic projection's origin sits on screen.
type WindowOrigin uint8

const (
	OriginCenter WindowOrigin = iota
	OriginBottomLeft
)

// ScalingMode controls how an orthographic projection's extents follow the
// target size.
type ScalingMode uint8

const (
	// ScalingWindowSize makes one world unit one logical pixel.
	ScalingWindowSize ScalingMode = iota
	// ScalingNone keeps the extents as set.
	ScalingNone
	// ScalingFixedVertical keeps the height at 2 units, or 1 with a bottom-left origin.
	ScalingFixedVertical
	// ScalingFixedHorizontal keeps the width at 2 units, or 1 with a bottom-left origin.
	ScalingFixedHorizontal
)

var scalingModeNames = map[ScalingMode]string{
	ScalingWindowSize:      "window_size",
	ScalingNone:            "none",
	ScalingFixedVertical:   "fixed_vertical",
	ScalingFixedHorizontal: "fixed_horizontal",
}

func (m ScalingMode) String() string {
	if name, ok := scalingModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ScalingMode(%d)", uint8(m))
}

// ParseScalingMode is the inverse of String. An empty string is ScalingWindowSize.
func ParseScalingMode(s string) (ScalingMode, error) {
	if s == "" {
		return ScalingWindowSize, nil
	}
	for mode, name := range scalingModeNames {
		if name == s {
			return mode, nil
		}
	}
	return ScalingWindowSize, fmt.Errorf("camera: unknown scaling mode %q", s)
}

// ParseWindowOrigin accepts "center" (or empty) and "bottom_left".
func ParseWindowOrigin(s string) (WindowOrigin, error) {
	switch s {
	case "", "center":
		return OriginCenter, nil
	case "bottom_left":
		return OriginBottomLeft, nil
	}
	return OriginCenter, fmt.Errorf("camera: unknown window origin %q", s)
}

// OrthographicProjection is a right-handed orthographic projection over
// Left..Right and Bottom..Top multiplied by Scale, with depth reversed so
// NearPlane maps to 1 and FarPlane to 0.
type OrthographicProjection struct {
	Left, Right, Bottom, Top float32
	NearPlane, FarPlane      float32
	WindowOrigin             WindowOrigin
	ScalingMode              ScalingMode
	Scale                    float32
	Depth                    DepthCalculation
}

// DefaultOrthographic covers -1..1 on both axes with far 1000, and follows the
// window size from the center.
func DefaultOrthographic() OrthographicProjection {
	return OrthographicProjection{
		Left: -1, Right: 1, Bottom: -1, Top: 1,
		NearPlane: 0, FarPlane: 1000,
		WindowOrigin: OriginCenter,
		ScalingMode:  ScalingWindowSize,
		Scale:        1,
		Depth:        Distance,
	}
}

func (p *OrthographicProjection) Update(width, height float32) {
	bottomLeft := p.WindowOrigin == OriginBottomLeft

	switch p.ScalingMode {
	case ScalingWindowSize:
		if bottomLeft {
			p.Left, p.Right, p.Bottom, p.Top = 0, width, 0, height
		} else {
			p.Left, p.Right, p.Bottom, p.Top = -width/2, width/2, -height/2, height/2
		}
	case ScalingFixedVertical:
		aspect := width / height
		if bottomLeft {
			p.Left, p.Right, p.Bottom, p.Top = 0, aspect, 0, 1
		} else {
			p.Left, p.Right, p.Bottom, p.Top = -aspect, aspect, -1, 1
		}
	case ScalingFixedHorizontal:
		aspect := height / width
		if bottomLeft {
			p.Left, p.Right, p.Bottom, p.Top = 0, 1, 0, aspect
		} else {
			p.Left, p.Right, p.Bottom, p.Top = -1, 1, -aspect, aspect
		}
	case ScalingNone:
	}
}

func (p *OrthographicProjection) ProjectionMatrix() mgl32.Mat4 {
	left, right := p.Left*p.Scale, p.Right*p.Scale
	bottom, top := p.Bottom*p.Scale, p.Top*p.Scale

	rcpWidth := 1 / (right - left)
	rcpHeight := 1 / (top - bottom)
	// Swapping near and far here is what reverses the depth range.
	rcpDepth := 1 / (p.FarPlane - p.NearPlane)

	return mgl32.Mat4{
		2 * rcpWidth, 0, 0, 0,
		0, 2 * rcpHeight, 0, 0,
		0, 0, rcpDepth, 0,
		-(left + right) * rcpWidth, -(top + bottom) * rcpHeight, rcpDepth * p.FarPlane, 1,
	}
}

func (p *OrthographicProjection) DepthCalculation() DepthCalculation { return p.Depth }
func (p *OrthographicProjection) Near() float32                      { return p.NearPlane }
func (p *OrthographicProjection) Far() float32                       { return p.FarPlane }

var (
	_ CameraProjection = (*PerspectiveProjection)(nil)
	_ CameraProjection = (*OrthographicProjection)(nil)
)
