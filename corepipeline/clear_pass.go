// Package corepipeline holds the render graph nodes every camera goes through.
package corepipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
)

// ClearPass is the label of the pass ClearPassNode begins, and the name it is
// added to the graph under by AddClearPass.
const ClearPass = "clear_pass"

type clearTarget struct {
	Camera *render.ExtractedCamera
	View   *render.ExtractedView
	Color  *render.ViewTarget       `ecs:"optional"`
	Depth  *render.ViewDepthTexture `ecs:"optional"`
}

// ClearPassNode clears each extracted camera's color and depth targets as its
// ClearSpec asks, in one pass per camera. Cameras that clear nothing, or have
// no view to clear, get no pass at all.
type ClearPassNode struct {
	world *ecs.Storage
	query *ecs.Query[clearTarget]
}

// NewClearPassNode creates the node for the given render world.
func NewClearPassNode(world *ecs.Storage) *ClearPassNode {
	return &ClearPassNode{world: world, query: ecs.NewQuery[clearTarget](world)}
}

// AddClearPass adds a ClearPassNode to graph under the name ClearPass.
func AddClearPass(graph *render.Graph, world *ecs.Storage) (*ClearPassNode, error) {
	node := NewClearPassNode(world)
	if err := graph.AddNode(ClearPass, node); err != nil {
		return nil, err
	}
	return node, nil
}

func (n *ClearPassNode) Input() []render.SlotInfo {
	return nil
}

// Update refreshes the set of archetypes the node visits. Passing a world
// other than the one the node was built for rebinds the node to it.
func (n *ClearPassNode) Update(world *ecs.Storage) {
	if world != nil && world != n.world {
		n.world = world
		n.query.Init(world)
	}
	n.query.UpdateArchetypes()
}

func (n *ClearPassNode) Run(graph *render.GraphContext, rc render.RenderContext, world *ecs.Storage) error {
	for _, target := range n.query.IterCached() {
		desc, ok := clearPassDescriptor(target)
		if !ok {
			viewcore.Logger().Debug("nothing to clear", "camera", target.Camera.Name, "target", target.Camera.Target)
			continue
		}

		pass, err := rc.BeginRenderPass(desc)
		if err != nil {
			return fmt.Errorf("corepipeline: begin %s for camera %q: %w", ClearPass, target.Camera.Name, err)
		}
		pass.End()
	}
	return nil
}

func clearPassDescriptor(target clearTarget) (*render.RenderPassDescriptor, bool) {
	desc := &render.RenderPassDescriptor{Label: ClearPass}

	if color, ok := target.Camera.Clear.Color.Value(); ok && target.Color != nil {
		desc.ColorAttachments = []render.RenderPassColorAttachment{
			target.Color.ColorAttachment(render.Operations[gputypes.Color]{
				Load:  render.Clear(color),
				Store: true,
			}),
		}
	}

	if depth, ok := target.Camera.Clear.Depth.Value(); ok && target.Depth != nil {
		desc.DepthStencilAttachment = &render.RenderPassDepthStencilAttachment{
			View: target.Depth.View,
			DepthOps: &render.Operations[float32]{
				Load:  render.Clear(depth),
				Store: true,
			},
		}
	}

	return desc, len(desc.ColorAttachments) > 0 || desc.DepthStencilAttachment != nil
}
