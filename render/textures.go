package render

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
	"github.com/plus3/viewcore/camera"
)

// LabeledView is a texture view with no GPU backing. Headless runs and tests
// use it wherever a hal.TextureView is required.
type LabeledView struct {
	Label     string
	Handle    uintptr
	Destroyed bool
}

func (v *LabeledView) Destroy()              { v.Destroyed = true }
func (v *LabeledView) NativeHandle() uintptr { return v.Handle }
func (v *LabeledView) String() string        { return v.Label }

var _ hal.TextureView = (*LabeledView)(nil)

// ViewLabel names a view for logs and comparisons: its String if it has one,
// otherwise its native handle.
func ViewLabel(view hal.TextureView) string {
	switch v := view.(type) {
	case nil:
		return "<nil>"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("view@%#x", v.NativeHandle())
	}
}

type depthEntry struct {
	view          *LabeledView
	width, height uint32
}

// LabeledViews is a ViewResolver that hands out LabeledViews, one color view
// per target and one depth view per target sized to the camera. A depth view
// is destroyed and replaced when its target changes size.
type LabeledViews struct {
	color  map[camera.RenderTarget]*LabeledView
	depth  map[camera.RenderTarget]depthEntry
	handle uintptr
}

func NewLabeledViews() *LabeledViews {
	return &LabeledViews{
		color: make(map[camera.RenderTarget]*LabeledView),
		depth: make(map[camera.RenderTarget]depthEntry),
	}
}

func (r *LabeledViews) next(label string) *LabeledView {
	r.handle++
	return &LabeledView{Label: label, Handle: r.handle}
}

func (r *LabeledViews) ColorView(target camera.RenderTarget) (hal.TextureView, bool) {
	view, ok := r.color[target]
	if !ok {
		view = r.next(target.String())
		r.color[target] = view
	}
	return view, true
}

func (r *LabeledViews) DepthView(target camera.RenderTarget, width, height uint32) (hal.TextureView, bool) {
	entry, ok := r.depth[target]
	if ok && entry.width == width && entry.height == height {
		return entry.view, true
	}
	if ok {
		entry.view.Destroy()
	}
	entry = depthEntry{
		view:   r.next(fmt.Sprintf("%s-depth", target)),
		width:  width,
		height: height,
	}
	r.depth[target] = entry
	return entry.view, true
}

var _ ViewResolver = (*LabeledViews)(nil)
