package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// HALRenderContext records passes into a wgpu HAL command encoder. The caller
// owns BeginEncoding/EndEncoding and submission.
type HALRenderContext struct {
	Encoder hal.CommandEncoder
}

// NewHALRenderContext wraps an encoder that has already begun encoding.
func NewHALRenderContext(encoder hal.CommandEncoder) *HALRenderContext {
	return &HALRenderContext{Encoder: encoder}
}

func (c *HALRenderContext) BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error) {
	if c.Encoder == nil {
		return nil, ErrNoEncoder
	}
	halDesc, err := ToHAL(desc)
	if err != nil {
		return nil, err
	}
	return c.Encoder.BeginRenderPass(halDesc), nil
}

// ToHAL converts a pass descriptor into its HAL form.
func ToHAL(desc *RenderPassDescriptor) (*hal.RenderPassDescriptor, error) {
	out := &hal.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: make([]hal.RenderPassColorAttachment, 0, len(desc.ColorAttachments)),
	}

	for i, color := range desc.ColorAttachments {
		if color.View == nil {
			return nil, fmt.Errorf("%w: color attachment %d of %q", ErrMissingView, i, desc.Label)
		}
		loadOp, clearValue := halLoadOp(color.Ops.Load)
		out.ColorAttachments = append(out.ColorAttachments, hal.RenderPassColorAttachment{
			View:          color.View,
			ResolveTarget: color.ResolveTarget,
			LoadOp:        loadOp,
			StoreOp:       halStoreOp(color.Ops.Store),
			ClearValue:    clearValue,
		})
	}

	if ds := desc.DepthStencilAttachment; ds != nil {
		if ds.View == nil {
			return nil, fmt.Errorf("%w: depth attachment of %q", ErrMissingView, desc.Label)
		}
		att := &hal.RenderPassDepthStencilAttachment{View: ds.View}
		if ds.DepthOps != nil {
			att.DepthLoadOp, att.DepthClearValue = halLoadOp(ds.DepthOps.Load)
			att.DepthStoreOp = halStoreOp(ds.DepthOps.Store)
		}
		if ds.StencilOps != nil {
			att.StencilLoadOp, att.StencilClearValue = halLoadOp(ds.StencilOps.Load)
			att.StencilStoreOp = halStoreOp(ds.StencilOps.Store)
		}
		out.DepthStencilAttachment = att
	}

	return out, nil
}

func halLoadOp[V any](op LoadOp[V]) (gputypes.LoadOp, V) {
	if v, ok := op.ClearValue(); ok {
		return gputypes.LoadOpClear, v
	}
	var zero V
	return gputypes.LoadOpLoad, zero
}

func halStoreOp(store bool) gputypes.StoreOp {
	if store {
		return gputypes.StoreOpStore
	}
	return gputypes.StoreOpDiscard
}
