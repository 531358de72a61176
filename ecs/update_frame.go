package ecs

// UpdateFrame is handed to every system run. DeltaTime is the frame delta for
// per-frame systems and the fixed step length for fixed-step systems.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
