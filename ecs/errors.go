package ecs

import "github.com/rotisserie/eris"

// Precondition violations. The registry panics with one of these (wrapped with
// context) instead of returning an error; recover and match with errors.Is.
var (
	ErrComponentNotFound      = eris.New("component not found")
	ErrEntityNotAlive         = eris.New("entity is not alive")
	ErrStaleEntity            = eris.New("stale entity handle")
	ErrDuplicateComponent     = eris.New("entity already owns component")
	ErrComponentType          = eris.New("component value does not match pool type")
	ErrComponentNotRegistered = eris.New("component type not registered")
	ErrNotInView              = eris.New("entity is not a member of the view")
	ErrReservedComponent      = eris.New("component is managed by the registry")
	ErrInvalidParent          = eris.New("invalid parent")
)

func violation(err error, format string, args ...any) {
	panic(eris.Wrapf(err, format, args...))
}
