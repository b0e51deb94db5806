package types

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the filesystem facade. Callers match them with
// errors.Is; every remote diagnostic is carried verbatim by CommandError.
var (
	ErrInvalidArgument = errors.New("shellfs: invalid argument")
	ErrNotReady        = errors.New("shellfs: target not ready")
	ErrNotFound        = errors.New("shellfs: not found")
	ErrAlreadyExists   = errors.New("shellfs: already exists")
)

// CommandError reports a remote command whose captured diagnostic text was
// non-empty. Text is the target's output verbatim; no translation happens
// because the shell channel is the only error signal the target provides.
type CommandError struct {
	Command string
	Text    string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("shellfs: remote command failed: %s", e.Text)
}

// NewCommandError wraps captured diagnostic text from a command execution.
func NewCommandError(command, text string) *CommandError {
	return &CommandError{Command: command, Text: text}
}

// IsCommandError reports whether err carries remote diagnostic text.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
