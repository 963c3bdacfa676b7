package scripting

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("no such entry")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrNameTaken     = errors.New("name already bound")
	ErrNotRegistered = errors.New("type not registered")
)

// ScriptError is raised when a script table operation, a compile or a run
// cannot complete. Context names where it happened: a scope path for table
// operations, the source name for compile and run.
type ScriptError struct {
	Context string
	Msg     string
	Err     error
}

func (e *ScriptError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Context, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Context, e.Msg, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// BindingError is returned when exposing or unexposing a host object fails.
type BindingError struct {
	Op   string // "register" or "unregister"
	Name string
	Err  error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("couldn't %s object '%s': %v", e.Op, e.Name, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
