// Package fs translates POSIX-like filesystem intents into shell commands
// for a remote target.
//
// The facade validates arguments and reachability up front, picks the
// command variant through the capability resolver, executes through the
// runner, and classifies captured text. Operations are synchronous and
// sequential; at most one command is in flight per target, and the package
// takes no locks around command execution.
package fs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shellfs/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/remote/command"
	"github.com/GriffinCanCode/shellfs/internal/remote/outcome"
	"github.com/GriffinCanCode/shellfs/internal/remote/tree"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// Runner is the command execution channel consumed by the facade.
type Runner interface {
	Execute(ctx context.Context, command string) (outcome.Outcome, error)
	ExecuteAsRoot(ctx context.Context, command string) (outcome.Outcome, error)
	Available() bool
}

// Tree is the directory cache collaborator.
type Tree interface {
	Root() *tree.Entry
	FindEntry(ctx context.Context, path string) (*tree.Entry, error)
	ListChildren(ctx context.Context, parent *tree.Entry, forceRefresh bool) ([]*tree.Entry, error)
	RegisterPlaceholder(path string) *tree.Entry
	Forget(path string)
}

// Capabilities reports whether the enhanced toolset is present.
type Capabilities interface {
	Available(ctx context.Context) bool
}

// Config assembles a Service.
type Config struct {
	Runner  Runner
	Tree    Tree
	Caps    Capabilities
	Logger  *logging.Logger
	Metrics *monitoring.Metrics // optional
	// RootCreate routes file creation through the privileged channel.
	RootCreate bool
}

// Service is the filesystem facade for one remote target.
type Service struct {
	runner     Runner
	tree       Tree
	caps       Capabilities
	log        *logging.Logger
	metrics    *monitoring.Metrics
	rootCreate bool

	mountsMu sync.RWMutex
	mounts   map[string]command.MountPoint
}

// New creates a facade from its collaborators.
func New(cfg Config) *Service {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Service{
		runner:     cfg.Runner,
		tree:       cfg.Tree,
		caps:       cfg.Caps,
		log:        log,
		metrics:    cfg.Metrics,
		rootCreate: cfg.RootCreate,
		mounts:     make(map[string]command.MountPoint),
	}
}

// Create creates an empty regular file and returns its entry.
func (s *Service) Create(ctx context.Context, path string) (*tree.Entry, error) {
	if err := s.check(path); err != nil {
		return nil, err
	}

	if _, err := s.tree.FindEntry(ctx, path); err == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrAlreadyExists, path)
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	enhanced := s.enhanced(ctx)
	cmd := command.CreateFile(paths.Escape(path), enhanced)
	if err := s.execute(ctx, "create", cmd, s.rootCreate); err != nil {
		return nil, err
	}

	return s.resolveFresh(ctx, path)
}

// CreateEntry creates the remote object described by an entry: directories
// go through MakeDirectory, everything else through Create.
func (s *Service) CreateEntry(ctx context.Context, e *tree.Entry) (*tree.Entry, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil entry", types.ErrInvalidArgument)
	}
	if e.Kind == tree.KindDirectory {
		return s.MakeDirectory(ctx, e.Path)
	}
	return s.Create(ctx, e.Path)
}

// Exists reports whether a path resolves on the target. Absence is a normal
// negative answer, never an error; any other failure propagates.
func (s *Service) Exists(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("%w: empty path", types.ErrInvalidArgument)
	}
	if _, err := s.tree.FindEntry(ctx, path); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Copy copies source into destination byte-wise. Metadata is not preserved
// and a missing destination directory surfaces as the redirect's own error
// text; there is no rollback on partial writes.
func (s *Service) Copy(ctx context.Context, source, destination string) error {
	return s.transfer(ctx, "copy", source, destination, command.Copy)
}

// Move renames source to destination.
func (s *Service) Move(ctx context.Context, source, destination string) error {
	return s.transfer(ctx, "move", source, destination, command.Move)
}

func (s *Service) transfer(ctx context.Context, op, source, destination string, build func(src, dst string) string) error {
	if err := s.check(source); err != nil {
		return err
	}
	if destination == "" {
		return fmt.Errorf("%w: empty destination", types.ErrInvalidArgument)
	}
	if _, err := s.tree.FindEntry(ctx, source); err != nil {
		return err
	}
	return s.execute(ctx, op, build(paths.Escape(source), paths.Escape(destination)), false)
}

// Chmod changes permissions from a permission set and checks the outcome.
func (s *Service) Chmod(ctx context.Context, path string, perms command.PermSet) error {
	if err := s.check(path); err != nil {
		return err
	}
	if _, err := s.tree.FindEntry(ctx, path); err != nil {
		return err
	}
	return s.execute(ctx, "chmod", command.Chmod(paths.Escape(path), perms.Octal()), false)
}

// ChmodLiteral changes permissions from a literal mode string without
// inspecting the outcome. Callers needing failure detection must use Chmod;
// this asymmetry is long-standing observable behavior, kept as is.
func (s *Service) ChmodLiteral(ctx context.Context, path, mode string) error {
	if err := s.check(path); err != nil {
		return err
	}
	if _, err := s.tree.FindEntry(ctx, path); err != nil {
		return err
	}

	start := time.Now()
	out, err := s.runner.Execute(ctx, command.Chmod(paths.Escape(path), mode))
	if err != nil {
		s.metrics.RecordCommand("chmod", false, time.Since(start))
		return fmt.Errorf("%w: %v", types.ErrNotReady, err)
	}
	s.metrics.RecordCommand("chmod", out.OK(), time.Since(start))
	return nil
}

// Delete removes a path. An absent path is a silent no-op: no command is
// executed and no error returned. Directories are removed recursively.
func (s *Service) Delete(ctx context.Context, path string) error {
	if err := s.check(path); err != nil {
		return err
	}

	entry, err := s.tree.FindEntry(ctx, path)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		return err
	}

	recursive := entry.Kind == tree.KindDirectory
	if err := s.execute(ctx, "delete", command.Delete(paths.Escape(path), recursive), false); err != nil {
		return err
	}
	// Drop the cached subtree, or the path would keep resolving forever.
	s.tree.Forget(path)
	return nil
}

// check validates the argument and reachability preconditions shared by all
// mutating operations.
func (s *Service) check(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", types.ErrInvalidArgument)
	}
	if !s.runner.Available() {
		return types.ErrNotReady
	}
	return nil
}

// enhanced resolves the toolset variant and mirrors it into the gauge.
func (s *Service) enhanced(ctx context.Context) bool {
	enhanced := s.caps.Available(ctx)
	s.metrics.RecordToolset(enhanced)
	return enhanced
}

// execute runs one command and classifies its captured text. Transport
// failures map to NotReady; diagnostic text maps to a CommandError carrying
// the text verbatim.
func (s *Service) execute(ctx context.Context, op, cmd string, asRoot bool) error {
	start := time.Now()

	var out outcome.Outcome
	var err error
	if asRoot {
		out, err = s.runner.ExecuteAsRoot(ctx, cmd)
	} else {
		out, err = s.runner.Execute(ctx, cmd)
	}
	if err != nil {
		s.metrics.RecordCommand(op, false, time.Since(start))
		return fmt.Errorf("%w: %v", types.ErrNotReady, err)
	}

	cerr := outcome.Classify(out)
	s.metrics.RecordCommand(op, cerr == nil, time.Since(start))
	if cerr != nil {
		s.log.Debug("remote command rejected",
			zap.String("operation", op),
			zap.String("command", cmd),
			zap.Error(cerr))
	}
	return cerr
}

// resolveFresh re-resolves a path after a mutation through a forced parent
// listing. Matching against the listing itself, not FindEntry, matters: a
// registered placeholder would satisfy FindEntry even when the remote
// object was never created.
func (s *Service) resolveFresh(ctx context.Context, path string) (*tree.Entry, error) {
	parent, err := s.tree.FindEntry(ctx, paths.Parent(path))
	if err != nil {
		return nil, err
	}
	children, err := s.tree.ListChildren(ctx, parent, true)
	if err != nil {
		return nil, err
	}

	name := paths.Base(path)
	for _, e := range children {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
}
