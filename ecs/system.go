package ecs

// System is a unit of behaviour run by the Scheduler. Exported Query and
// Singleton fields are wired to the scheduler's storage before the first run;
// any other fields persist between runs.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
