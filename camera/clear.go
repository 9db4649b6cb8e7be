package camera

import "github.com/gogpu/gputypes"

// ClearOp is either a value to clear a channel to, or no clear at all, which
// keeps the target's previous contents.
type ClearOp[T any] struct {
	value T
	clear bool
}

// ClearValue clears to v.
func ClearValue[T any](v T) ClearOp[T] {
	return ClearOp[T]{value: v, clear: true}
}

// NoClear leaves the channel untouched.
func NoClear[T any]() ClearOp[T] {
	return ClearOp[T]{}
}

// Value returns the clear value and whether the channel is cleared.
func (o ClearOp[T]) Value() (T, bool) {
	return o.value, o.clear
}

// IsClear reports whether the channel is cleared.
func (o ClearOp[T]) IsClear() bool {
	return o.clear
}

// DefaultClearColor is the color cameras clear to unless configured otherwise.
var DefaultClearColor = gputypes.Color{R: 0.4, G: 0.4, B: 0.4, A: 1}

// DefaultClearDepth is the reverse-Z far plane.
const DefaultClearDepth float32 = 0

// ClearSpec is the per-camera clear configuration.
type ClearSpec struct {
	Color ClearOp[gputypes.Color]
	Depth ClearOp[float32]
}

// DefaultClearSpec clears color to DefaultClearColor and depth to DefaultClearDepth.
func DefaultClearSpec() ClearSpec {
	return ClearSpec{
		Color: ClearValue(DefaultClearColor),
		Depth: ClearValue(DefaultClearDepth),
	}
}

// OverlayClearSpec clears nothing. Cameras drawing on top of another camera's
// output use it.
func OverlayClearSpec() ClearSpec {
	return ClearSpec{}
}
