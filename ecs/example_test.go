package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/viewcore/ecs"
)

type movementSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Movers.Iter() {
		if item.Velocity.DX == 0 {
			continue
		}
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		frame.Storage.MarkChanged(id, reflect.TypeFor[Position]())
	}
}

type movedReporter struct {
	Moved ecs.Query[struct {
		Position *Position `ecs:"changed"`
		Label    *Label    `ecs:"optional"`
	}]
}

func (s *movedReporter) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Moved.Values() {
		name := "anonymous"
		if item.Label != nil {
			name = string(*item.Label)
		}
		fmt.Printf("%s at x=%.1f\n", name, item.Position.X)
	}
}

func Example() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{}, Velocity{DX: 2}, Label("rover"))
	storage.Spawn(Position{X: 5}, Velocity{}, Label("beacon"))

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&movedReporter{})

	fmt.Println("frame 1")
	scheduler.Once(0.5)
	fmt.Println("frame 2")
	scheduler.Once(0.5)

	// Output:
	// frame 1
	// rover at x=1.0
	// beacon at x=5.0
	// frame 2
	// rover at x=2.0
}

func ExampleEventReader() {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	events := ecs.AddEvents[string](scheduler)

	reader := ecs.NewEventReader[string](storage)
	events.Send("resized")
	events.Send("moved")

	fmt.Println(reader.Read())
	fmt.Println(len(reader.Read()))

	// Output:
	// [resized moved]
	// 0
}
