package render_test

import (
	"errors"
	"testing"

	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceNode struct {
	name    string
	trace   *[]string
	runErr  error
	updates int
}

func (n *traceNode) Input() []render.SlotInfo {
	return []render.SlotInfo{{Name: "view", Type: render.SlotEntity}}
}

func (n *traceNode) Update(*ecs.Storage) {
	n.updates++
}

func (n *traceNode) Run(graph *render.GraphContext, rc render.RenderContext, world *ecs.Storage) error {
	*n.trace = append(*n.trace, graph.Node())
	return n.runErr
}

func TestGraphRunsInOrder(t *testing.T) {
	var trace []string
	graph := render.NewGraph()
	first := &traceNode{trace: &trace}
	second := &traceNode{trace: &trace}
	require.NoError(t, graph.AddNode("first", first))
	require.NoError(t, graph.AddNode("second", second))
	assert.Equal(t, []string{"first", "second"}, graph.Names())

	world := ecs.NewStorage(ecs.NewComponentRegistry())
	graph.Update(world)
	assert.Equal(t, 1, first.updates)
	assert.Equal(t, 1, second.updates)

	require.NoError(t, graph.Run(render.NewRecordingContext(), world))
	assert.Equal(t, []string{"first", "second"}, trace)

	node, ok := graph.Node("second")
	assert.True(t, ok)
	assert.Same(t, second, node)
}

func TestGraphDuplicateNode(t *testing.T) {
	graph := render.NewGraph()
	require.NoError(t, graph.AddNode("clear", &traceNode{}))
	err := graph.AddNode("clear", &traceNode{})
	assert.ErrorIs(t, err, render.ErrDuplicateNode)
}

func TestGraphStopsAtFirstFailure(t *testing.T) {
	var trace []string
	deviceLost := errors.New("device lost")

	graph := render.NewGraph()
	require.NoError(t, graph.AddNode("ok", &traceNode{trace: &trace}))
	require.NoError(t, graph.AddNode("broken", &traceNode{trace: &trace, runErr: deviceLost}))
	require.NoError(t, graph.AddNode("never", &traceNode{trace: &trace}))

	err := graph.Run(render.NewRecordingContext(), ecs.NewStorage(ecs.NewComponentRegistry()))
	require.Error(t, err)

	var nodeErr *render.NodeRunError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "broken", nodeErr.Node)
	assert.ErrorIs(t, err, deviceLost)
	assert.Equal(t, `render: node "broken": device lost`, err.Error())
	assert.Equal(t, []string{"ok", "broken"}, trace)
}
