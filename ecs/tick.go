package ecs

// Tick is the storage-wide change counter. Every system run and every command
// flush happens at its own tick, so comparing a component's ticks against the
// tick a system last ran at tells whether the component was added or written since.
type Tick uint64

// ComponentTicks records when a component slot was inserted and last written.
type ComponentTicks struct {
	Added   Tick
	Changed Tick
}

func newComponentTicks(tick Tick) ComponentTicks {
	return ComponentTicks{Added: tick, Changed: tick}
}

// IsAdded reports whether the component was inserted after lastRun.
func (t ComponentTicks) IsAdded(lastRun Tick) bool {
	return t.Added > lastRun
}

// IsChanged reports whether the component was inserted or written after lastRun.
func (t ComponentTicks) IsChanged(lastRun Tick) bool {
	return t.Changed > lastRun
}

// tickFilter restricts a query field to recently added or changed components.
type tickFilter uint8

const (
	filterNone tickFilter = iota
	filterAdded
	filterChanged
)

func (f tickFilter) matches(ticks *ComponentTicks, lastRun Tick) bool {
	switch f {
	case filterAdded:
		return ticks.IsAdded(lastRun)
	case filterChanged:
		return ticks.IsChanged(lastRun)
	default:
		return true
	}
}
