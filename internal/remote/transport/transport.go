// Package transport provides command runners for a remote target.
//
// A runner executes one command line at a time on the target's shell and
// captures its diagnostic text. Callers must not run two commands
// concurrently against the same target; the command interpreter session is
// shared, so serialization is the caller's (or a session multiplexer's)
// responsibility. Runners perform no retries and no internal timeouts;
// cancellation follows the supplied context.
package transport

import (
	"context"

	"github.com/GriffinCanCode/shellfs/internal/remote/outcome"
)

// Runner executes shell command lines on a target.
//
// A returned error means the transport itself failed (unreachable target,
// broken session); command-level failures are carried inside the Outcome's
// diagnostic text instead, because the shell channel exposes no structured
// exit status.
type Runner interface {
	// Execute runs a command under the regular shell user.
	Execute(ctx context.Context, command string) (outcome.Outcome, error)

	// ExecuteAsRoot runs a command through the privileged channel when one
	// is configured, falling back to the regular channel otherwise.
	ExecuteAsRoot(ctx context.Context, command string) (outcome.Outcome, error)

	// Output runs a command and returns its captured stdout. Diagnostic
	// text still signals failure through the returned Outcome.
	Output(ctx context.Context, command string) (string, outcome.Outcome, error)

	// Available reports whether the target is currently reachable.
	Available() bool

	// Close releases the underlying connection.
	Close() error
}
