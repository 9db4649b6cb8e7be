// Package config loads camera scenes from YAML and keeps them live while the
// file is edited.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/camera"
	"github.com/plus3/viewcore/transform"
	"github.com/plus3/viewcore/window"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownProjection = errors.New("config: unknown projection kind")
	ErrUnnamedCamera     = errors.New("config: camera has no name")
	ErrDuplicateCamera   = errors.New("config: duplicate camera name")
	ErrAmbiguousTarget   = errors.New("config: target names both a window and an image")
	ErrInvalidImage      = errors.New("config: image id must be non-zero")
)

const (
	Perspective  = "perspective"
	Orthographic = "orthographic"
)

// Scene is the top level of a scene file.
type Scene struct {
	Windows []WindowSpec `yaml:"windows"`
	Images  []ImageSpec  `yaml:"images"`
	Cameras []CameraSpec `yaml:"cameras"`
}

type WindowSpec struct {
	Id     uint32  `yaml:"id"`
	Title  string  `yaml:"title"`
	Width  uint32  `yaml:"width"`
	Height uint32  `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type ImageSpec struct {
	Id     uint64 `yaml:"id"`
	Label  string `yaml:"label"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// TargetSpec names at most one of a window or an image. Neither means the
// primary window.
type TargetSpec struct {
	Window *uint32 `yaml:"window"`
	Image  *uint64 `yaml:"image"`
}

// ProjectionSpec holds the parameters of either projection kind. Unset fields
// keep the projection's defaults. Fov is in degrees.
type ProjectionSpec struct {
	Kind         string   `yaml:"kind"`
	Fov          *float32 `yaml:"fov"`
	Near         *float32 `yaml:"near"`
	Far          *float32 `yaml:"far"`
	ScalingMode  string   `yaml:"scaling_mode"`
	WindowOrigin string   `yaml:"window_origin"`
	Scale        *float32 `yaml:"scale"`
	Depth        string   `yaml:"depth_calculation"`
}

type TransformSpec struct {
	Translation [3]float32  `yaml:"translation"`
	LookAt      *[3]float32 `yaml:"look_at"`
}

// ClearSpecYAML is a camera's clear configuration. Each channel is either
// omitted (default clear), the string "none", or a value.
type ClearSpecYAML struct {
	Color ColorOp `yaml:"color"`
	Depth DepthOp `yaml:"depth"`
}

type CameraSpec struct {
	Name       string         `yaml:"name"`
	Target     TargetSpec     `yaml:"target"`
	Projection ProjectionSpec `yaml:"projection"`
	Transform  TransformSpec  `yaml:"transform"`
	Clear      ClearSpecYAML  `yaml:"clear"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	scene, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return scene, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Validate checks everything Spawn would otherwise fail on.
func (s *Scene) Validate() error {
	for _, img := range s.Images {
		if img.Id == 0 {
			return fmt.Errorf("%w: %q", ErrInvalidImage, img.Label)
		}
	}

	seen := make(map[string]bool, len(s.Cameras))
	for i := range s.Cameras {
		spec := &s.Cameras[i]
		if spec.Name == "" {
			return fmt.Errorf("%w: camera %d", ErrUnnamedCamera, i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateCamera, spec.Name)
		}
		seen[spec.Name] = true

		if spec.Target.Window != nil && spec.Target.Image != nil {
			return fmt.Errorf("%w: camera %q", ErrAmbiguousTarget, spec.Name)
		}
		if _, err := spec.Projection.Build(); err != nil {
			return fmt.Errorf("camera %q: %w", spec.Name, err)
		}
	}
	return nil
}

// RenderTarget converts the spec to a camera target.
func (t TargetSpec) RenderTarget() camera.RenderTarget {
	switch {
	case t.Image != nil:
		return camera.ImageTarget(asset.Handle(*t.Image))
	case t.Window != nil:
		return camera.WindowTarget(window.WindowId(*t.Window))
	default:
		return camera.RenderTarget{}
	}
}

// Build returns the projection component described by the spec:
// a camera.PerspectiveProjection or a camera.OrthographicProjection.
func (p ProjectionSpec) Build() (any, error) {
	switch p.Kind {
	case "", Perspective:
		projection := camera.DefaultPerspective()
		p.applyPerspective(&projection)
		return projection, nil
	case Orthographic:
		projection := camera.DefaultOrthographic()
		if err := p.applyOrthographic(&projection); err != nil {
			return nil, err
		}
		return projection, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, p.Kind)
}

func (p ProjectionSpec) applyPerspective(projection *camera.PerspectiveProjection) {
	if p.Fov != nil {
		projection.Fov = mgl32.DegToRad(*p.Fov)
	}
	if p.Near != nil {
		projection.NearPlane = *p.Near
	}
	if p.Far != nil {
		projection.FarPlane = *p.Far
	}
}

func (p ProjectionSpec) applyOrthographic(projection *camera.OrthographicProjection) error {
	var err error
	if projection.ScalingMode, err = camera.ParseScalingMode(p.ScalingMode); err != nil {
		return err
	}
	if projection.WindowOrigin, err = camera.ParseWindowOrigin(p.WindowOrigin); err != nil {
		return err
	}
	if projection.Depth, err = camera.ParseDepthCalculation(p.Depth); err != nil {
		return err
	}
	if p.Near != nil {
		projection.NearPlane = *p.Near
	}
	if p.Far != nil {
		projection.FarPlane = *p.Far
	}
	if p.Scale != nil {
		projection.Scale = *p.Scale
	}
	return nil
}

// GlobalTransform converts the spec to a transform.
func (t TransformSpec) GlobalTransform() transform.GlobalTransform {
	g := transform.FromTranslation(mgl32.Vec3(t.Translation))
	if t.LookAt != nil {
		g = g.LookingAt(mgl32.Vec3(*t.LookAt), mgl32.Vec3{0, 1, 0})
	}
	return g
}

// ClearSpec converts the spec to a camera clear spec.
func (c ClearSpecYAML) ClearSpec() camera.ClearSpec {
	return camera.ClearSpec{Color: c.Color.op(), Depth: c.Depth.op()}
}

// Camera builds the camera component for the spec. Its projection matrix is
// identity until the projection system first runs.
func (c CameraSpec) Camera() camera.Camera {
	cam := camera.New(c.Name, c.Target.RenderTarget())
	cam.Clear = c.Clear.ClearSpec()
	return cam
}

// Components returns everything to spawn for the camera.
func (c CameraSpec) Components() ([]any, error) {
	projection, err := c.Projection.Build()
	if err != nil {
		return nil, err
	}
	return []any{c.Camera(), projection, c.Transform.GlobalTransform()}, nil
}

const noneKeyword = "none"

// ColorOp is a clear color channel in YAML: omitted, "none", or [r, g, b] / [r, g, b, a].
type ColorOp struct {
	set   bool
	none  bool
	color gputypes.Color
}

func (c *ColorOp) UnmarshalYAML(node *yaml.Node) error {
	c.set = true
	if node.Kind == yaml.ScalarNode {
		if node.Value != noneKeyword {
			return fmt.Errorf("config: line %d: clear color must be %q or a list", node.Line, noneKeyword)
		}
		c.none = true
		return nil
	}

	var rgba []float64
	if err := node.Decode(&rgba); err != nil {
		return err
	}
	switch len(rgba) {
	case 3:
		rgba = append(rgba, 1)
	case 4:
	default:
		return fmt.Errorf("config: line %d: clear color needs 3 or 4 components, got %d", node.Line, len(rgba))
	}
	c.color = gputypes.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

func (c ColorOp) op() camera.ClearOp[gputypes.Color] {
	switch {
	case !c.set:
		return camera.ClearValue(camera.DefaultClearColor)
	case c.none:
		return camera.NoClear[gputypes.Color]()
	default:
		return camera.ClearValue(c.color)
	}
}

// DepthOp is a clear depth channel in YAML: omitted, "none", or a number.
type DepthOp struct {
	set   bool
	none  bool
	depth float32
}

func (d *DepthOp) UnmarshalYAML(node *yaml.Node) error {
	d.set = true
	if node.Kind == yaml.ScalarNode && node.Value == noneKeyword {
		d.none = true
		return nil
	}
	return node.Decode(&d.depth)
}

func (d DepthOp) op() camera.ClearOp[float32] {
	switch {
	case !d.set:
		return camera.ClearValue(camera.DefaultClearDepth)
	case d.none:
		return camera.NoClear[float32]()
	default:
		return camera.ClearValue(d.depth)
	}
}
