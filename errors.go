package main

import "fmt"

// ErrorKind classifies errors raised by command handlers so the dispatcher
// can render them consistently at the boundary.
type ErrorKind int

const (
	ErrUnexpected ErrorKind = iota
	ErrSecurity
	ErrNotFound
	ErrInvalidArgument
	ErrPermission
)

// TermError is a typed error carrying structured payload (path, command)
// instead of pre-formatted text. Rendering happens once, in the dispatcher.
type TermError struct {
	Kind    ErrorKind
	Path    string
	Command string
	Message string
}

func (e *TermError) Error() string {
	switch e.Kind {
	case ErrSecurity:
		if e.Path != "" {
			return fmt.Sprintf("security violation: %s: %s", e.Message, e.Path)
		}
		return fmt.Sprintf("security violation: %s", e.Message)
	case ErrNotFound:
		if e.Command != "" {
			return fmt.Sprintf("Command '%s' not found. Type 'help' for available commands.", e.Command)
		}
		return fmt.Sprintf("File or directory not found: %s", e.Path)
	case ErrInvalidArgument:
		return e.Message
	case ErrPermission:
		return fmt.Sprintf("Permission denied: %s", e.Path)
	default:
		return e.Message
	}
}

// Is lets callers match on kind with errors.Is using a bare &TermError{Kind: k}.
func (e *TermError) Is(target error) bool {
	t, ok := target.(*TermError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func securityError(path, message string) *TermError {
	return &TermError{Kind: ErrSecurity, Path: path, Message: message}
}

func notFoundError(path string) *TermError {
	return &TermError{Kind: ErrNotFound, Path: path}
}

func commandNotFoundError(command string) *TermError {
	return &TermError{Kind: ErrNotFound, Command: command}
}

func invalidArgError(format string, args ...interface{}) *TermError {
	return &TermError{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func permissionError(path string) *TermError {
	return &TermError{Kind: ErrPermission, Path: path}
}
