package fs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// mirrorMkdirs makes directory creation observable on the fake target:
// every mkdir that produces no diagnostic text materializes its path in
// the tree's listings.
func mirrorMkdirs(runner *fakeRunner, ft *fakeTree) func(string) {
	return func(cmd string) {
		if runner.outcomes[cmd] != "" {
			return
		}
		if path, ok := strings.CutPrefix(cmd, "mkdir "); ok {
			ft.addDir(path)
		}
		if path, ok := strings.CutPrefix(cmd, "busybox mkdir -p "); ok {
			ft.addDir(path)
		}
	}
}

func TestMakeDirectorySingleCommandWhenEnhanced(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.onExecute = mirrorMkdirs(runner, ft)
	s := newService(runner, ft, true)

	entry, err := s.MakeDirectory(context.Background(), "/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c", entry.Path)
	assert.Equal(t, []string{"busybox mkdir -p /a/b/c"}, runner.commands)
}

func TestMakeDirectoryWalkCreatesOnlyMissingSegments(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	ft.addDir("/a")
	runner.onExecute = mirrorMkdirs(runner, ft)
	s := newService(runner, ft, false)

	entry, err := s.MakeDirectory(context.Background(), "/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c", entry.Path)
	assert.Equal(t, []string{"mkdir /a/b", "mkdir /a/b/c"}, runner.commands)
}

func TestMakeDirectoryWalkForcesEveryListing(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.onExecute = mirrorMkdirs(runner, ft)
	s := newService(runner, ft, false)

	_, err := s.MakeDirectory(context.Background(), "/a/b")
	require.NoError(t, err)

	require.NotEmpty(t, ft.listCalls)
	for _, call := range ft.listCalls {
		assert.True(t, call.forced, "listing of %s was served from cache", call.path)
	}
}

func TestMakeDirectoryIsIdempotent(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.onExecute = mirrorMkdirs(runner, ft)
	s := newService(runner, ft, false)
	ctx := context.Background()

	_, err := s.MakeDirectory(ctx, "/a/b")
	require.NoError(t, err)
	created := len(runner.commands)

	_, err = s.MakeDirectory(ctx, "/a/b")
	require.NoError(t, err)
	assert.Len(t, runner.commands, created, "second invocation must run no creation commands")
}

func TestMakeDirectoryExistingPathRunsNoCommands(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	ft.addDir("/a")
	ft.addDir("/a/b")
	s := newService(runner, ft, false)

	entry, err := s.MakeDirectory(context.Background(), "/a/b")
	require.NoError(t, err)
	assert.Equal(t, "/a/b", entry.Path)
	assert.Empty(t, runner.commands)
}

func TestMakeDirectoryFallsBackWhenSingleShotFails(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.outcomes["busybox mkdir -p /a/b"] = "busybox: applet not found"
	runner.onExecute = mirrorMkdirs(runner, ft)
	s := newService(runner, ft, true)

	_, err := s.MakeDirectory(context.Background(), "/a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"busybox mkdir -p /a/b",
		"mkdir /a",
		"mkdir /a/b",
	}, runner.commands)
}

// Only the hook that materializes directories is withheld here, so every
// created segment stays invisible: the leaf cannot be verified and the
// caller gets everything that went wrong on the way.
func TestMakeDirectoryAggregatesFailures(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.outcomes["busybox mkdir -p /a/b"] = "mkdir: applet not found"
	s := newService(runner, ft, true)

	_, err := s.MakeDirectory(context.Background(), "/a/b")
	require.Error(t, err)

	var ce *types.CommandError
	assert.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestMakeDirectoryToleratesSegmentFailures(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.outcomes["mkdir /a"] = "mkdir: /a: File exists"
	runner.onExecute = func(cmd string) {
		// The intermediate command fails but the leaf still lands.
		if cmd == "mkdir /a/b" {
			ft.addDir("/a")
			ft.addDir("/a/b")
		}
	}
	s := newService(runner, ft, false)

	_, err := s.MakeDirectory(context.Background(), "/a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"mkdir /a", "mkdir /a/b"}, runner.commands)
}

func TestMakeDirectoryWalkAbortsOnTransportLoss(t *testing.T) {
	runner := newFakeRunner()
	ft := newFakeTree()
	runner.onExecute = func(string) {
		// The session drops right after the first segment command.
		runner.transport = errors.New("connection reset")
	}
	s := newService(runner, ft, false)

	_, err := s.MakeDirectory(context.Background(), "/a/b")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotReady)
	assert.Equal(t, []string{"mkdir /a"}, runner.commands,
		"no further segment commands after the transport is gone")
}

func TestMakeDirectoryUnreachableTarget(t *testing.T) {
	runner := newFakeRunner()
	runner.down = true
	s := newService(runner, newFakeTree(), true)

	_, err := s.MakeDirectory(context.Background(), "/a")
	assert.ErrorIs(t, err, types.ErrNotReady)
}
