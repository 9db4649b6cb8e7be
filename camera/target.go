package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/viewcore/asset"
	"github.com/plus3/viewcore/window"
)

// TargetKind tells which variant a RenderTarget holds.
type TargetKind uint8

const (
	TargetWindow TargetKind = iota
	TargetImage
)

// RenderTarget is where a camera renders: a window or an image. It is a
// comparable value, so it can be used as a map key. The zero value targets
// the primary window.
type RenderTarget struct {
	kind   TargetKind
	window window.WindowId
	image  asset.Handle
}

// WindowTarget targets the window with the given id.
func WindowTarget(id window.WindowId) RenderTarget {
	return RenderTarget{kind: TargetWindow, window: id}
}

// ImageTarget targets the image behind handle.
func ImageTarget(handle asset.Handle) RenderTarget {
	return RenderTarget{kind: TargetImage, image: handle}
}

func (t RenderTarget) Kind() TargetKind {
	return t.kind
}

// Window returns the targeted window id, if this targets a window.
func (t RenderTarget) Window() (window.WindowId, bool) {
	return t.window, t.kind == TargetWindow
}

// Image returns the targeted image handle, if this targets an image.
func (t RenderTarget) Image() (asset.Handle, bool) {
	return t.image, t.kind == TargetImage
}

func (t RenderTarget) String() string {
	switch t.kind {
	case TargetWindow:
		return fmt.Sprintf("Window(%s)", t.window)
	case TargetImage:
		return fmt.Sprintf("Image(%s)", t.image)
	default:
		return fmt.Sprintf("RenderTarget(%d)", t.kind)
	}
}

// Targets resolves render target sizes. Either registry may be nil, in which
// case targets of that kind never resolve.
type Targets struct {
	Windows *window.Windows
	Images  *asset.Images
}

// LogicalSize returns the target's size in user units: a window's logical size
// or an image's pixel size.
func (r Targets) LogicalSize(target RenderTarget) (mgl32.Vec2, bool) {
	switch target.kind {
	case TargetWindow:
		if r.Windows == nil {
			return mgl32.Vec2{}, false
		}
		win, ok := r.Windows.Get(target.window)
		if !ok {
			return mgl32.Vec2{}, false
		}
		return mgl32.Vec2{win.Width(), win.Height()}, true
	case TargetImage:
		w, h, ok := r.imageSize(target.image)
		return mgl32.Vec2{float32(w), float32(h)}, ok
	}
	return mgl32.Vec2{}, false
}

// PhysicalSize returns the target's size in device pixels.
func (r Targets) PhysicalSize(target RenderTarget) (width, height uint32, ok bool) {
	switch target.kind {
	case TargetWindow:
		if r.Windows == nil {
			return 0, 0, false
		}
		win, found := r.Windows.Get(target.window)
		if !found {
			return 0, 0, false
		}
		return win.PhysicalWidth, win.PhysicalHeight, true
	case TargetImage:
		return r.imageSize(target.image)
	}
	return 0, 0, false
}

func (r Targets) imageSize(handle asset.Handle) (uint32, uint32, bool) {
	if r.Images == nil {
		return 0, 0, false
	}
	img, ok := r.Images.Get(handle)
	if !ok {
		return 0, 0, false
	}
	return img.Size.Width, img.Size.Height, true
}
