package ecs_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/viewcore/ecs"
	"github.com/stretchr/testify/assert"
)

type addedProbe struct {
	Added ecs.Query[struct {
		Lens *Lens `ecs:"added"`
	}]
	Seen []int
}

func (s *addedProbe) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Added.Len())
}

type lensWidener struct {
	All     ecs.Query[struct{ *Lens }]
	Changed ecs.Query[struct {
		Lens *Lens `ecs:"changed"`
	}]
	Seen []int
}

func (s *lensWidener) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Changed.Len())
	for id, item := range s.All.Iter() {
		item.Lens.Fov += 0.1
		frame.Storage.MarkChanged(id, reflect.TypeFor[Lens]())
	}
}

type lensSpawner struct {
	Spawned []ecs.EntityId
}

func (s *lensSpawner) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.SpawnThen(func(id ecs.EntityId) {
		s.Spawned = append(s.Spawned, id)
	}, Lens{Fov: 1})
}

type countingReader struct {
	Labels ecs.EventReader[string]
	Seen   [][]string
}

func (s *countingReader) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Labels.Read())
}

type sleeper struct {
	runs int
	dur  time.Duration
}

func (s *sleeper) Execute(*ecs.UpdateFrame) {
	s.runs++
	time.Sleep(s.dur)
}

func TestSchedulerAddedDetection(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	probe := &addedProbe{}
	scheduler.Register(probe)

	storage.Spawn(Lens{})
	scheduler.Once(0.016)
	scheduler.Once(0.016)
	storage.Spawn(Lens{})
	scheduler.Once(0.016)

	assert.Equal(t, []int{1, 0, 1}, probe.Seen)
}

func TestSchedulerChangeDetection(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	widener := &lensWidener{}
	scheduler.Register(widener)

	id := storage.Spawn(Lens{Fov: 1})

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	ecs.WriteComponent[Lens](storage, id)
	scheduler.Once(0.016)

	assert.Equal(t, []int{1, 0, 1}, widener.Seen, "a system never sees its own writes")
}

func TestSchedulerCommandSpawnsAreAddedNextFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	probe := &addedProbe{}
	spawner := &lensSpawner{}
	scheduler.Register(probe)
	scheduler.Register(spawner)

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	assert.Equal(t, []int{0, 1}, probe.Seen)
	assert.Len(t, spawner.Spawned, 2)
}

func TestSchedulerEventReaders(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	events := ecs.AddEvents[string](scheduler)
	reader := &countingReader{}
	scheduler.Register(reader)

	events.Send("a")
	events.Send("b")
	scheduler.Once(0.016)
	scheduler.Once(0.016)
	events.Send("c")
	scheduler.Once(0.016)

	assert.Equal(t, [][]string{{"a", "b"}, nil, {"c"}}, reader.Seen)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	stats := scheduler.GetStats()
	assert.Zero(t, stats.SystemCount)
	assert.Zero(t, stats.TotalExecutions)

	fast := &sleeper{dur: time.Millisecond}
	slow := &sleeper{dur: 2 * time.Millisecond}
	scheduler.Register(fast)
	scheduler.Register(slow)

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	for _, sys := range stats.Systems {
		assert.Equal(t, "sleeper", sys.Name)
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.LessOrEqual(t, sys.MinDuration, sys.AvgDuration)
		assert.LessOrEqual(t, sys.AvgDuration, sys.MaxDuration)
		assert.NotZero(t, sys.LastDuration)
	}
	assert.Equal(t, 3, fast.runs)
	assert.Equal(t, 3, slow.runs)
}
