package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// systemParam is implemented by every field type the Scheduler injects into
// systems: Query, Singleton and EventReader.
type systemParam interface {
	Init(storage *Storage)
	prepare(lastRun Tick)
}

type systemEntry struct {
	system  System
	params  []systemParam
	lastRun Tick

	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in registration order.
type Scheduler struct {
	storage    *Storage
	systems    []*systemEntry
	frameEnd   []func()
	eventTypes map[reflect.Type]bool
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:    storage,
		eventTypes: make(map[reflect.Type]bool),
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds a system to the scheduler and initializes its Query,
// Singleton and EventReader fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &systemEntry{
		system:      system,
		params:      s.initializeParams(system),
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) initializeParams(system System) []systemParam {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var params []systemParam
	for i := range systemValue.NumField() {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		param, ok := field.Addr().Interface().(systemParam)
		if !ok {
			continue
		}
		param.Init(s.storage)
		params = append(params, param)
	}
	return params
}

// Once executes all registered systems once with the given delta time.
//
// Each system runs at a fresh tick, after its queries have been executed
// against the ticks of its previous run. Deferred commands are flushed at one
// more fresh tick, so spawns they make are visible as added to every system on
// the next frame. Event queues rotate last.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.systems {
		tick := s.storage.AdvanceTick()
		for _, param := range entry.params {
			param.prepare(entry.lastRun)
		}

		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
		entry.lastRun = tick
	}

	s.storage.AdvanceTick()
	frame.Commands.Flush(s.storage)

	for _, fn := range s.frameEnd {
		fn()
	}
}

func (e *systemEntry) record(duration time.Duration) {
	e.executionCount++
	e.lastDuration = duration
	e.totalDuration += duration
	e.minDuration = min(e.minDuration, duration)
	e.maxDuration = max(e.maxDuration, duration)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		avgDuration := time.Duration(0)
		if entry.executionCount > 0 {
			avgDuration = entry.totalDuration / time.Duration(entry.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.executionCount,
			MinDuration:    entry.minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		stats.TotalExecutions += entry.executionCount
	}

	return stats
}
