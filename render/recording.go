package render

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// RecordingContext is an in-memory RenderContext. It keeps a copy of every
// pass descriptor it was asked to begin, which makes it useful without a GPU.
type RecordingContext struct {
	passes []RenderPassDescriptor
	open   int
	ended  int
	err    error
}

// NewRecordingContext creates an empty recorder.
func NewRecordingContext() *RecordingContext {
	return &RecordingContext{}
}

// FailWith makes every later BeginRenderPass return err. Pass nil to recover.
func (c *RecordingContext) FailWith(err error) {
	c.err = err
}

func (c *RecordingContext) BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.open > 0 {
		return nil, fmt.Errorf("render: pass %q begun while another pass is open", desc.Label)
	}

	recorded := *desc
	recorded.ColorAttachments = append([]RenderPassColorAttachment(nil), desc.ColorAttachments...)
	if desc.DepthStencilAttachment != nil {
		ds := *desc.DepthStencilAttachment
		recorded.DepthStencilAttachment = &ds
	}
	c.passes = append(c.passes, recorded)
	c.open++
	return &recordedPass{ctx: c}, nil
}

// Passes returns the descriptors begun since the last Reset.
func (c *RecordingContext) Passes() []RenderPassDescriptor {
	return c.passes
}

// Ended returns how many passes were ended since the last Reset.
func (c *RecordingContext) Ended() int {
	return c.ended
}

// Reset forgets recorded passes. The failure set by FailWith is kept.
func (c *RecordingContext) Reset() {
	c.passes = c.passes[:0]
	c.open = 0
	c.ended = 0
}

type recordedPass struct {
	ctx   *RecordingContext
	ended bool
}

func (p *recordedPass) End() {
	if p.ended {
		return
	}
	p.ended = true
	p.ctx.open--
	p.ctx.ended++
}

// Describe renders a pass descriptor as a single line, for logs and debug UIs.
func Describe(desc RenderPassDescriptor) string {
	var b strings.Builder
	b.WriteString(desc.Label)
	for _, color := range desc.ColorAttachments {
		fmt.Fprintf(&b, " color[%v %s]", color.View, describeOps(color.Ops, formatColor))
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		fmt.Fprintf(&b, " depth[%v", ds.View)
		if ds.DepthOps != nil {
			fmt.Fprintf(&b, " %s", describeOps(*ds.DepthOps, func(v float32) string { return fmt.Sprintf("%g", v) }))
		}
		if ds.StencilOps != nil {
			fmt.Fprintf(&b, " stencil %s", describeOps(*ds.StencilOps, func(v uint32) string { return fmt.Sprintf("%d", v) }))
		}
		b.WriteString("]")
	}
	return b.String()
}

func describeOps[V any](ops Operations[V], format func(V) string) string {
	load := "load"
	if v, ok := ops.Load.ClearValue(); ok {
		load = "clear " + format(v)
	}
	if ops.Store {
		return load + " store"
	}
	return load + " discard"
}

func formatColor(c gputypes.Color) string {
	return fmt.Sprintf("(%.2g %.2g %.2g %.2g)", c.R, c.G, c.B, c.A)
}
