// Package viewcore keeps camera view state in step with its render targets and
// clears those targets at the start of each frame.
//
// The work is split across sub-packages:
//
//   - ecs: archetype entity storage, queries with change ticks, events and the scheduler
//   - window, asset: the window registry and image store cameras render into
//   - camera: cameras, projections and the system that keeps projection matrices current
//   - render: the render graph, pass descriptors and the extracted render world
//   - corepipeline: the clear pass node
//   - config: YAML scene files with hot reload
//
// This package only holds the logger shared by all of them.
package viewcore
