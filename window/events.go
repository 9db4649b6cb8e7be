package window

// WindowResized is sent when a window's size changes. Width and Height are logical.
type WindowResized struct {
	Id     WindowId
	Width  float32
	Height float32
}

// WindowCreated is sent once when a window is registered.
type WindowCreated struct {
	Id WindowId
}
