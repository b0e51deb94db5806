package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/remote/outcome"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
)

// LocalConfig describes a runner that drives the local shell, used for
// development targets and integration testing against the host.
type LocalConfig struct {
	Shell       string // defaults to "sh"
	RootCommand string // privilege prefix for ExecuteAsRoot
	UsePTY      bool   // allocate a pty; some toolsets refuse to run without one
}

// LocalRunner executes commands through the local shell.
type LocalRunner struct {
	shell       string
	rootCommand string
	usePTY      bool
	closed      bool
	log         *logging.Logger
}

// NewLocal returns a runner backed by the local shell.
func NewLocal(cfg LocalConfig, log *logging.Logger) *LocalRunner {
	shell := cfg.Shell
	if shell == "" {
		shell = "sh"
	}
	return &LocalRunner{
		shell:       shell,
		rootCommand: cfg.RootCommand,
		usePTY:      cfg.UsePTY,
		log:         log,
	}
}

// Execute runs one command through `sh -c`, capturing stderr as the
// diagnostic text.
func (r *LocalRunner) Execute(ctx context.Context, command string) (outcome.Outcome, error) {
	return r.run(ctx, command, io.Discard)
}

// Output runs one command and additionally captures its stdout. Under a pty
// stdout and stderr are one stream; the combined output is returned.
func (r *LocalRunner) Output(ctx context.Context, command string) (string, outcome.Outcome, error) {
	var stdout bytes.Buffer
	out, err := r.run(ctx, command, &stdout)
	return stdout.String(), out, err
}

func (r *LocalRunner) run(ctx context.Context, command string, stdout io.Writer) (outcome.Outcome, error) {
	if r.closed {
		return outcome.Outcome{}, fmt.Errorf("local runner closed")
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)

	var text string
	if r.usePTY {
		// A pty merges stdout and stderr; only a failed exit makes the
		// combined output count as diagnostic text.
		f, err := pty.Start(cmd)
		if err != nil {
			return outcome.Outcome{}, fmt.Errorf("start pty: %w", err)
		}
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, f)
		f.Close()
		if werr := cmd.Wait(); werr != nil {
			text = buf.String()
			if text == "" {
				text = werr.Error()
			}
		} else {
			_, _ = stdout.Write(buf.Bytes())
		}
	} else {
		var stderr bytes.Buffer
		cmd.Stdout = stdout
		cmd.Stderr = &stderr
		err := cmd.Run()
		text = stderr.String()
		if err != nil && text == "" {
			text = err.Error()
		}
	}

	if ctx.Err() != nil {
		return outcome.Outcome{}, ctx.Err()
	}

	r.log.Debug("local command executed",
		zap.String("command", command),
		zap.Bool("ok", text == ""))

	return outcome.Outcome{Command: command, Text: text}, nil
}

// ExecuteAsRoot runs the command behind the configured privilege prefix.
// The inner command is quoted as a whole; it routinely contains quoted path
// arguments of its own.
func (r *LocalRunner) ExecuteAsRoot(ctx context.Context, command string) (outcome.Outcome, error) {
	if r.rootCommand == "" {
		return r.Execute(ctx, command)
	}
	return r.Execute(ctx, r.rootCommand+" "+paths.Escape(command))
}

// Available reports whether the runner can still execute commands.
func (r *LocalRunner) Available() bool {
	return !r.closed
}

// Close marks the runner unusable. There is no persistent connection to
// tear down for the local shell.
func (r *LocalRunner) Close() error {
	r.closed = true
	return nil
}
