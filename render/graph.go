// Package render runs the per-frame render graph against the render world and
// describes the passes its nodes issue.
package render

import (
	"errors"
	"fmt"

	"github.com/plus3/viewcore"
	"github.com/plus3/viewcore/ecs"
)

var (
	ErrDuplicateNode = errors.New("render: duplicate node name")
	ErrNoEncoder     = errors.New("render: render context has no command encoder")
	ErrMissingView   = errors.New("render: attachment has no texture view")
)

// SlotType is the kind of value passed between nodes.
type SlotType uint8

const (
	SlotBuffer SlotType = iota
	SlotTextureView
	SlotSampler
	SlotEntity
)

// SlotInfo declares one input or output of a node.
type SlotInfo struct {
	Name string
	Type SlotType
}

// Node is one unit of work in the render graph. Update runs with the render
// world before any node runs and may refresh cached queries. Run issues GPU
// work and must not modify the world.
type Node interface {
	Input() []SlotInfo
	Update(world *ecs.Storage)
	Run(graph *GraphContext, rc RenderContext, world *ecs.Storage) error
}

// GraphContext is handed to a node while it runs.
type GraphContext struct {
	node   string
	inputs []SlotInfo
}

// Node returns the name of the running node.
func (c *GraphContext) Node() string {
	return c.node
}

// Inputs returns the slots the running node declared.
func (c *GraphContext) Inputs() []SlotInfo {
	return c.inputs
}

// NodeRunError reports the node whose Run failed and aborted the graph.
type NodeRunError struct {
	Node string
	Err  error
}

func (e *NodeRunError) Error() string {
	return fmt.Sprintf("render: node %q: %v", e.Node, e.Err)
}

func (e *NodeRunError) Unwrap() error {
	return e.Err
}

type namedNode struct {
	name string
	node Node
}

// Graph runs nodes in the order they were added.
type Graph struct {
	nodes []namedNode
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends a node. Names must be unique.
func (g *Graph) AddNode(name string, node Node) error {
	if _, ok := g.Node(name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	g.nodes = append(g.nodes, namedNode{name: name, node: node})
	return nil
}

// Node looks up a node by name.
func (g *Graph) Node(name string) (Node, bool) {
	for _, n := range g.nodes {
		if n.name == name {
			return n.node, true
		}
	}
	return nil, false
}

// Names returns node names in run order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		names[i] = n.name
	}
	return names
}

// Update calls Update on every node.
func (g *Graph) Update(world *ecs.Storage) {
	for _, n := range g.nodes {
		n.node.Update(world)
	}
}

// Run runs every node in order and stops at the first failure, which is
// returned as a *NodeRunError.
func (g *Graph) Run(rc RenderContext, world *ecs.Storage) error {
	for _, n := range g.nodes {
		ctx := &GraphContext{node: n.name, inputs: n.node.Input()}
		if err := n.node.Run(ctx, rc, world); err != nil {
			viewcore.Logger().Warn("render graph aborted", "node", n.name, "err", err)
			return &NodeRunError{Node: n.name, Err: err}
		}
	}
	return nil
}
