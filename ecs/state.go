package ecs

import "fmt"

// StateMachine is a finite set of application states, each with systems that
// run when the state is entered, every pass while it is current, and when it
// is left. Add it to a Scheduler with AddStates.
//
// Set only queues a transition; the Scheduler applies it at the start of its
// next pass by running the exit systems, flushing their commands, then running
// the enter systems and flushing again.
type StateMachine[S comparable] struct {
	current S
	next    *S
	entered bool

	enter  map[S][]*registeredSystem
	update map[S][]*registeredSystem
	exit   map[S][]*registeredSystem

	observers []func(from, to S)
}

// NewStateMachine creates a machine that starts in initial. The enter systems
// of initial run on the scheduler's first pass.
func NewStateMachine[S comparable](initial S) *StateMachine[S] {
	return &StateMachine[S]{
		current: initial,
		enter:   make(map[S][]*registeredSystem),
		update:  make(map[S][]*registeredSystem),
		exit:    make(map[S][]*registeredSystem),
	}
}

// Current returns the active state.
func (m *StateMachine[S]) Current() S {
	return m.current
}

// Pending returns the queued next state, if any.
func (m *StateMachine[S]) Pending() (S, bool) {
	if m.next == nil {
		var zero S
		return zero, false
	}
	return *m.next, true
}

// Set queues a transition to next. Queuing a second transition before the
// first is applied, or transitioning to the current state, is a logic error
// and panics.
func (m *StateMachine[S]) Set(next S) {
	if m.next != nil {
		panic(fmt.Sprintf("state transition to %v requested while transition to %v is pending", next, *m.next))
	}
	if next == m.current {
		panic(fmt.Sprintf("state transition requested to current state %v", next))
	}
	m.next = &next
}

// OnEnter adds systems that run once each time state becomes current.
func (m *StateMachine[S]) OnEnter(state S, systems ...System) {
	m.enter[state] = append(m.enter[state], wrapSystems(systems)...)
}

// OnUpdate adds systems that run every pass while state is current.
func (m *StateMachine[S]) OnUpdate(state S, systems ...System) {
	m.update[state] = append(m.update[state], wrapSystems(systems)...)
}

// OnExit adds systems that run once each time state stops being current.
func (m *StateMachine[S]) OnExit(state S, systems ...System) {
	m.exit[state] = append(m.exit[state], wrapSystems(systems)...)
}

// Observe registers fn to be called whenever a transition is applied, after
// exit systems and before enter systems.
func (m *StateMachine[S]) Observe(fn func(from, to S)) {
	m.observers = append(m.observers, fn)
}

func (m *StateMachine[S]) transition() (exit, enter []*registeredSystem, changed bool) {
	if !m.entered {
		m.entered = true
		return nil, m.enter[m.current], true
	}
	if m.next == nil {
		return nil, nil, false
	}

	from := m.current
	m.current = *m.next
	m.next = nil
	return m.exit[from], m.enter[m.current], true
}

func (m *StateMachine[S]) notify(from, to any) {
	for _, fn := range m.observers {
		fn(from.(S), to.(S))
	}
}

func (m *StateMachine[S]) active() []*registeredSystem {
	return m.update[m.current]
}

func (m *StateMachine[S]) all() []*registeredSystem {
	var out []*registeredSystem
	for _, set := range []map[S][]*registeredSystem{m.enter, m.update, m.exit} {
		for _, systems := range set {
			out = append(out, systems...)
		}
	}
	return out
}

func (m *StateMachine[S]) currentAny() any {
	return m.current
}

// StateDriver is implemented by StateMachine for every state type.
type StateDriver interface {
	transition() (exit, enter []*registeredSystem, changed bool)
	active() []*registeredSystem
	all() []*registeredSystem
	currentAny() any
	notify(from, to any)
}
