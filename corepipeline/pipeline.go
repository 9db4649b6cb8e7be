package corepipeline

import (
	"github.com/plus3/viewcore/ecs"
	"github.com/plus3/viewcore/render"
)

// Pipeline is the per-frame render path from a main world: extract every
// camera into a private render world, then run the graph over it. The graph
// starts with the clear pass; callers may add nodes after it.
type Pipeline struct {
	World     *ecs.Storage
	Graph     *render.Graph
	Extractor *render.Extractor
	Clear     *ClearPassNode
}

// NewPipeline builds a pipeline reading cameras from main. resolver supplies
// the views to clear and may be nil.
func NewPipeline(main *ecs.Storage, resolver render.ViewResolver) (*Pipeline, error) {
	registry := ecs.NewComponentRegistry()
	render.RegisterComponents(registry)
	world := ecs.NewStorage(registry)

	graph := render.NewGraph()
	clear, err := AddClearPass(graph, world)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		World:     world,
		Graph:     graph,
		Extractor: render.NewExtractor(main, world, resolver),
		Clear:     clear,
	}, nil
}

// Frame extracts, updates and runs the graph against rc. It returns the
// number of cameras extracted.
func (p *Pipeline) Frame(rc render.RenderContext) (int, error) {
	extracted := p.Extractor.Extract()
	p.Graph.Update(p.World)
	return extracted, p.Graph.Run(rc, p.World)
}
