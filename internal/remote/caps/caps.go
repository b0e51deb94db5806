// Package caps resolves which command toolset a target supports.
package caps

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/remote/command"
	"github.com/GriffinCanCode/shellfs/internal/remote/outcome"
)

// Prober executes the probe command on the target.
type Prober interface {
	Execute(ctx context.Context, command string) (outcome.Outcome, error)
}

// Resolver lazily determines whether the enhanced toolset is present on the
// target. The probe is itself a remote round trip, so the answer is cached
// for the lifetime of the runner; invalidation on reconnect belongs to the
// connection lifecycle, not to this package.
type Resolver struct {
	prober Prober
	tool   string
	log    *logging.Logger

	once      sync.Once
	available bool
}

// NewResolver creates a resolver probing with the given tool binary.
// An empty tool falls back to the default enhanced tool.
func NewResolver(prober Prober, tool string, log *logging.Logger) *Resolver {
	if tool == "" {
		tool = command.EnhancedTool
	}
	return &Resolver{prober: prober, tool: tool, log: log}
}

// Available reports whether the enhanced toolset is present, probing the
// target exactly once.
func (r *Resolver) Available(ctx context.Context) bool {
	r.once.Do(func() {
		out, err := r.prober.Execute(ctx, r.tool)
		if err != nil {
			r.log.Warn("toolset probe failed, assuming minimal shell", zap.Error(err))
			return
		}
		// Running the multi-call binary bare prints its applet list; a
		// "not found" complaint arrives as diagnostic text.
		r.available = out.OK()
		r.log.Info("toolset probe complete",
			zap.String("tool", r.tool),
			zap.Bool("available", r.available))
	})
	return r.available
}
