package tree

import (
	"context"
	"strings"

	"github.com/GriffinCanCode/shellfs/internal/remote/outcome"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
)

// Executor runs a listing command and returns its stdout.
type Executor interface {
	Output(ctx context.Context, command string) (string, outcome.Outcome, error)
}

// ShellLister fetches directory contents by running ls on the target and
// parsing its long-format output.
type ShellLister struct {
	runner Executor
}

// NewShellLister creates a lister driving the given runner.
func NewShellLister(runner Executor) *ShellLister {
	return &ShellLister{runner: runner}
}

// List runs `ls -l` for dir and converts each line into an Entry.
func (l *ShellLister) List(ctx context.Context, dir string) ([]Entry, error) {
	stdout, out, err := l.runner.Output(ctx, "ls -l "+paths.Escape(dir))
	if err != nil {
		return nil, err
	}
	if cerr := outcome.Classify(out); cerr != nil {
		return nil, cerr
	}
	return parseListing(dir, stdout), nil
}

// parseListing converts ls -l output into entries. The mode string's first
// character carries the node kind; the name is everything past the fixed
// columns. Lines that do not look like listing rows (e.g. "total 12") are
// skipped.
func parseListing(dir, listing string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 || len(fields[0]) < 10 {
			continue
		}

		kind := kindFromMode(fields[0][0])

		// Device rows carry "major, minor" in place of the size column,
		// shifting the name one field to the right.
		nameStart := 8
		if (fields[0][0] == 'b' || fields[0][0] == 'c') && len(fields) >= 10 {
			nameStart = 9
		}
		name := strings.Join(fields[nameStart:], " ")
		// Symlink rows render as "name -> target"; the name is enough here.
		if i := strings.Index(name, " -> "); i >= 0 {
			name = name[:i]
		}
		if name == "." || name == ".." {
			continue
		}

		entries = append(entries, Entry{
			Path: paths.Combine(dir, name),
			Name: name,
			Kind: kind,
		})
	}
	return entries
}

func kindFromMode(c byte) Kind {
	switch c {
	case 'd':
		return KindDirectory
	case 'b':
		return KindBlockDevice
	case '-':
		return KindFile
	default:
		return KindOther
	}
}
