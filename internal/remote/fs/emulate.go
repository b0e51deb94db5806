package fs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/shellfs/internal/remote/command"
	"github.com/GriffinCanCode/shellfs/internal/remote/tree"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// MakeDirectory creates a directory and all missing parents.
//
// With the enhanced toolset the whole chain is one command. Without it, or
// when that command fails, the segment walk emulates recursive creation.
// Either way the call is idempotent: an already-existing path produces no
// error. A failure is only surfaced when the directory cannot be shown to
// exist afterwards, as an aggregate of everything that went wrong on the
// way there.
func (s *Service) MakeDirectory(ctx context.Context, path string) (*tree.Entry, error) {
	if err := s.check(path); err != nil {
		return nil, err
	}

	placeholder := s.tree.RegisterPlaceholder(path)

	var firstErr error
	if s.enhanced(ctx) {
		err := s.execute(ctx, "mkdir_all", command.MakeDirectoryAll(paths.Escape(path)), false)
		if err == nil {
			return placeholder, nil
		}
		if errors.Is(err, types.ErrNotReady) {
			return nil, err
		}
		// The single-shot attempt is absorbed; the walk takes over.
		firstErr = err
	}

	s.metrics.RecordFallbackWalk()
	walkErr := s.makeDirectoryWalk(ctx, path)

	// The walk tolerates per-segment noise, so existence of the leaf is the
	// real success criterion.
	entry, verifyErr := s.resolveFresh(ctx, path)
	if verifyErr == nil {
		return entry, nil
	}
	return nil, multierr.Combine(
		firstErr,
		walkErr,
		fmt.Errorf("directory %s could not be verified: %w", path, verifyErr),
	)
}

// makeDirectoryWalk emulates `mkdir -p` one segment at a time. Each step
// forces a fresh listing: a directory created in step N must be visible in
// step N+1, and a stale cache here is the classic way to corrupt the walk.
// Segment-level command failures are logged and tolerated; the caller
// verifies the leaf.
func (s *Service) makeDirectoryWalk(ctx context.Context, path string) error {
	current := s.tree.Root()

	for _, segment := range paths.Split(path) {
		children, err := s.tree.ListChildren(ctx, current, true)
		if err != nil {
			return err
		}

		var found *tree.Entry
		for _, child := range children {
			if child.Name == segment {
				found = child
				break
			}
		}
		if found != nil {
			current = found
			continue
		}

		childPath := paths.Combine(current.Path, segment)
		entry := s.tree.RegisterPlaceholder(childPath)
		if err := s.execute(ctx, "mkdir", command.MakeDirectory(paths.Escape(childPath)), false); err != nil {
			// Command-level noise is tolerated; a lost transport is not,
			// every later segment would be doomed anyway.
			if errors.Is(err, types.ErrNotReady) {
				return err
			}
			s.log.Warn("segment creation failed",
				zap.String("path", childPath),
				zap.Error(err))
		}
		current = entry
	}
	return nil
}
