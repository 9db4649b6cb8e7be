package ecs

// System is one step of a frame. Implementations are usually pointers to
// structs; exported Query, Singleton and EventReader fields are initialized by
// the Scheduler on Register, and any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
