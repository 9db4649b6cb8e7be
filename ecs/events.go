package ecs

import "reflect"

// Events is a double-buffered event queue stored as a singleton. Events sent
// during one frame stay readable through the end of the next frame, so a reader
// running before the sender in frame order still sees them once.
type Events[T any] struct {
	previous      []T
	current       []T
	previousStart int
	currentStart  int
	count         int
}

// Send appends an event.
func (e *Events[T]) Send(event T) {
	e.current = append(e.current, event)
	e.count++
}

// Update rotates the buffers, dropping events sent two updates ago. The
// Scheduler calls it once per frame for every queue registered with AddEvents.
func (e *Events[T]) Update() {
	recycled := e.previous[:0]
	e.previous = e.current
	e.previousStart = e.currentStart
	e.current = recycled
	e.currentStart = e.count
}

// Clear drops every buffered event.
func (e *Events[T]) Clear() {
	e.previous = e.previous[:0]
	e.current = e.current[:0]
	e.previousStart = e.count
	e.currentStart = e.count
}

// Len returns the number of buffered events.
func (e *Events[T]) Len() int {
	return len(e.previous) + len(e.current)
}

// readFrom returns the buffered events with sequence number >= cursor, oldest first.
func (e *Events[T]) readFrom(cursor int) []T {
	var out []T
	if skip := cursor - e.previousStart; skip < len(e.previous) {
		out = append(out, e.previous[max(skip, 0):]...)
	}
	if skip := cursor - e.currentStart; skip < len(e.current) {
		out = append(out, e.current[max(skip, 0):]...)
	}
	return out
}

// EventReader reads an Events[T] queue with its own cursor. Each event is
// returned by Read at most once per reader; the cursor never moves backwards.
// Declare it as a system field and the Scheduler initializes it.
type EventReader[T any] struct {
	events Singleton[Events[T]]
	cursor int
}

// NewEventReader creates a reader positioned at the oldest buffered event.
func NewEventReader[T any](storage *Storage) *EventReader[T] {
	r := &EventReader[T]{}
	r.Init(storage)
	return r
}

// Init binds the reader to storage. Called by the Scheduler during system registration.
func (r *EventReader[T]) Init(storage *Storage) {
	r.events.Init(storage)
	r.cursor = 0
}

func (r *EventReader[T]) prepare(Tick) {}

// Read returns the unread events in arrival order and marks them read.
// Returns nil when the queue was never added to the storage.
func (r *EventReader[T]) Read() []T {
	events := r.events.Get()
	if events == nil {
		return nil
	}
	out := events.readFrom(r.cursor)
	r.cursor = events.count
	return out
}

// AddEvents makes sure an Events[T] singleton exists in the scheduler's storage
// and rotates it at the end of every Scheduler.Once. Adding the same event type
// twice returns the existing queue.
func AddEvents[T any](s *Scheduler) *Events[T] {
	events := NewSingleton[Events[T]](s.storage).Get()
	eventType := reflect.TypeFor[T]()
	if !s.eventTypes[eventType] {
		s.eventTypes[eventType] = true
		s.frameEnd = append(s.frameEnd, events.Update)
	}
	return events
}
