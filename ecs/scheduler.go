package ecs

import (
	"context"
	"reflect"
	"strings"
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

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	name        string
	system      System
	queries     []queryExecutor
	initialized bool
	stats       systemStatsInternal
}

func wrapSystems(systems []System) []*registeredSystem {
	out := make([]*registeredSystem, len(systems))
	for i, system := range systems {
		out[i] = &registeredSystem{
			name:   systemName(system),
			system: system,
			stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
		}
	}
	return out
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// fixedGroup runs its systems once per whole step held in the accumulator.
type fixedGroup struct {
	step        time.Duration
	accumulator time.Duration
	systems     []*registeredSystem
}

// Scheduler runs systems against one Storage. A pass (Once) applies pending
// state transitions, runs the update systems of every current state, then the
// per-frame systems, then each fixed-step group as many times as its
// accumulated time allows, and finally flushes deferred commands.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
	fixed   []*fixedGroup
	states  []StateDriver
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds a system that runs on every pass.
func (s *Scheduler) Register(system System) {
	rs := wrapSystems([]System{system})[0]
	s.initialize(rs)
	s.systems = append(s.systems, rs)
}

// RegisterFixed adds systems that run once per elapsed step of game time.
// Systems registered with the same step share one accumulator and run in
// registration order.
func (s *Scheduler) RegisterFixed(step time.Duration, systems ...System) {
	if step <= 0 {
		panic("fixed step must be positive")
	}

	wrapped := wrapSystems(systems)
	for _, rs := range wrapped {
		s.initialize(rs)
	}

	for _, group := range s.fixed {
		if group.step == step {
			group.systems = append(group.systems, wrapped...)
			return
		}
	}
	s.fixed = append(s.fixed, &fixedGroup{step: step, systems: wrapped})
}

// AddStates attaches a state machine. Its systems are initialised lazily on
// first run, so hooks may be added before or after this call.
func (s *Scheduler) AddStates(states StateDriver) {
	s.states = append(s.states, states)
}

func (s *Scheduler) initialize(rs *registeredSystem) {
	if rs.initialized {
		return
	}
	rs.initialized = true

	systemValue := reflect.ValueOf(rs.system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + systemType.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			rs.queries = append(rs.queries, field.Addr().Interface().(queryExecutor))
		}
	}
}

func (s *Scheduler) run(systems []*registeredSystem, frame *UpdateFrame) {
	for _, rs := range systems {
		s.initialize(rs)
		for _, q := range rs.queries {
			q.Execute()
		}

		start := time.Now()
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := &rs.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}
}

// Once executes one pass with the given frame delta in seconds.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, states := range s.states {
		from := states.currentAny()
		exit, enter, changed := states.transition()
		if !changed {
			continue
		}
		to := states.currentAny()

		s.run(exit, frame)
		frame.Commands.Flush(s.storage)
		if from != to {
			states.notify(from, to)
		}
		s.run(enter, frame)
		frame.Commands.Flush(s.storage)
	}

	for _, states := range s.states {
		s.run(states.active(), frame)
	}

	s.run(s.systems, frame)

	elapsed := time.Duration(dt * float64(time.Second))
	for _, group := range s.fixed {
		group.accumulator += elapsed
		fixedFrame := &UpdateFrame{
			DeltaTime: group.step.Seconds(),
			Commands:  frame.Commands,
			Storage:   s.storage,
		}
		for group.accumulator >= group.step {
			group.accumulator -= group.step
			s.run(group.systems, fixedFrame)
		}
	}

	frame.Commands.Flush(s.storage)
}

// Run executes passes at the given interval until the context is cancelled.
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

func (s *Scheduler) allSystems() []*registeredSystem {
	all := append([]*registeredSystem(nil), s.systems...)
	for _, group := range s.fixed {
		all = append(all, group.systems...)
	}
	for _, states := range s.states {
		all = append(all, states.all()...)
	}
	return all
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	systems := s.allSystems()
	stats := &SchedulerStats{
		SystemCount: len(systems),
		Systems:     make([]SystemStats, len(systems)),
	}

	for i, rs := range systems {
		internal := rs.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           rs.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
