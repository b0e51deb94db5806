// Package outcome classifies captured command output as success or failure.
//
// The target's shell channel returns no structured exit status, so the
// presence of diagnostic text is the only failure signal. Classification
// must stay string-presence based; a richer error channel cannot exist here
// because the real target cannot supply one.
package outcome

import "github.com/GriffinCanCode/shellfs/internal/shared/types"

// Outcome is the transient result of a single remote command execution.
type Outcome struct {
	Command string // the command line that was executed
	Text    string // captured diagnostic text; empty means success
}

// OK reports whether the execution produced no diagnostic text.
func (o Outcome) OK() bool {
	return o.Text == ""
}

// Classify returns nil for a clean outcome, or a CommandError carrying the
// diagnostic text verbatim.
func Classify(o Outcome) error {
	if o.OK() {
		return nil
	}
	return types.NewCommandError(o.Command, o.Text)
}
