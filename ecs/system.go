package ecs

// System is a behavior run once per Scheduler frame. Exported Query and
// Singleton fields are bound to the registry on Register; other fields keep
// their state between frames. Structural changes made through frame.Commands
// are applied after every system has run.
type System interface {
	Execute(frame *UpdateFrame)
}
