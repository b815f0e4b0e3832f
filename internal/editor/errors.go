package editor

import (
	"errors"
	"fmt"
)

var (
	ErrClosed    = errors.New("editor session is closed")
	ErrWrongKind = errors.New("operation not supported by this editor")
)

// PreconditionError rejects a command the user can correct. The session
// stays open.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

func precondition(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// IsPrecondition reports whether err is a *PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// CollaboratorError reports a failure of the rendering or processing
// collaborator. The session cannot continue after one.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsCollaborator reports whether err is a *CollaboratorError.
func IsCollaborator(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
