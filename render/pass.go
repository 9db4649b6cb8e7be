package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// LoadOp says how a pass initializes an attachment: clear it to a value or
// load its existing contents. The zero value loads.
type LoadOp[V any] struct {
	value V
	clear bool
}

// Clear returns a load op that clears to v.
func Clear[V any](v V) LoadOp[V] {
	return LoadOp[V]{value: v, clear: true}
}

// Load returns a load op that keeps existing contents.
func Load[V any]() LoadOp[V] {
	return LoadOp[V]{}
}

// ClearValue returns the clear value and whether this op clears.
func (op LoadOp[V]) ClearValue() (V, bool) {
	return op.value, op.clear
}

// Operations pairs a load op with whether the pass stores its results.
type Operations[V any] struct {
	Load  LoadOp[V]
	Store bool
}

// RenderPassColorAttachment is one color target of a pass.
type RenderPassColorAttachment struct {
	View          hal.TextureView
	ResolveTarget hal.TextureView
	Ops           Operations[gputypes.Color]
}

// RenderPassDepthStencilAttachment is the depth/stencil target of a pass. A nil
// DepthOps or StencilOps leaves that aspect untouched.
type RenderPassDepthStencilAttachment struct {
	View       hal.TextureView
	DepthOps   *Operations[float32]
	StencilOps *Operations[uint32]
}

// RenderPassDescriptor describes a render pass to begin.
type RenderPassDescriptor struct {
	Label                  string
	ColorAttachments       []RenderPassColorAttachment
	DepthStencilAttachment *RenderPassDepthStencilAttachment
}

// RenderPass is an open pass. End must be called before the next pass begins.
type RenderPass interface {
	End()
}

// RenderContext is the device-facing side of the graph.
type RenderContext interface {
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error)
}
