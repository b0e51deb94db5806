// Package paths provides POSIX path helpers for the remote target.
//
// All remote paths are '/'-separated regardless of the local platform, so
// nothing here may go through path/filepath.
package paths

import (
	"strings"

	"github.com/alessio/shellescape"
)

// Separator is the canonical directory separator on the target.
const Separator = "/"

// Root is the target's filesystem root.
const Root = "/"

// Dev is the well-known directory holding device nodes on the target.
const Dev = "/dev"

// Combine joins a parent directory and a child name with exactly one
// separator between them.
func Combine(parent, name string) string {
	if parent == "" || parent == Root {
		return Root + strings.TrimPrefix(name, Separator)
	}
	return strings.TrimSuffix(parent, Separator) + Separator + strings.TrimPrefix(name, Separator)
}

// Split returns the ordered, non-empty segments of a path.
func Split(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, Separator) {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Base returns the last segment of a path, or "/" for the root.
func Base(p string) string {
	segments := Split(p)
	if len(segments) == 0 {
		return Root
	}
	return segments[len(segments)-1]
}

// Parent returns the directory containing p, or "/" when p is a top-level
// path.
func Parent(p string) string {
	segments := Split(p)
	if len(segments) <= 1 {
		return Root
	}
	return Root + strings.Join(segments[:len(segments)-1], Separator)
}

// Escape quotes a path for safe inclusion inside a shell command line.
// Escaped strings are never stored; callers recompute them per command to
// avoid double-escaping.
func Escape(p string) string {
	return shellescape.Quote(p)
}
