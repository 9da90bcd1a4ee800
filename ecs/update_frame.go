package ecs

type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Registry  *Registry
}

func newUpdateFrame(dt float64, r *Registry) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Registry:  r,
	}
}
