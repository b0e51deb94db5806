// Package tree caches the known directory tree of a remote target.
//
// Entries are discovered through a Lister and kept until the next refresh.
// The cache never issues deletion commands itself; the facade forgets
// deleted subtrees, and everything else re-syncs on the next forced listing.
package tree

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// Kind classifies a remote filesystem node.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindBlockDevice
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindBlockDevice:
		return "block-device"
	default:
		return "other"
	}
}

// Entry is one known node of the remote tree.
type Entry struct {
	Path string // full POSIX path on the target
	Name string // display name (last path segment)
	Kind Kind
}

// Lister fetches the children of a remote directory.
type Lister interface {
	List(ctx context.Context, dir string) ([]Entry, error)
}

// Cache maintains the known remote tree, backed by a Lister.
type Cache struct {
	lister Lister
	log    *logging.Logger

	mu       sync.RWMutex
	nodes    map[string]*Entry
	children map[string][]string // dir path -> child paths, present once listed
}

// New creates a cache seeded with the root entry.
func New(lister Lister, log *logging.Logger) *Cache {
	root := &Entry{Path: paths.Root, Name: paths.Root, Kind: KindDirectory}
	return &Cache{
		lister:   lister,
		log:      log,
		nodes:    map[string]*Entry{paths.Root: root},
		children: make(map[string][]string),
	}
}

// Root returns the well-known root entry.
func (c *Cache) Root() *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nodes[paths.Root]
}

// FindEntry resolves a path to its entry, listing intermediate directories
// as needed. Absence is reported as ErrNotFound.
func (c *Cache) FindEntry(ctx context.Context, path string) (*Entry, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", types.ErrInvalidArgument)
	}

	c.mu.RLock()
	if e, ok := c.nodes[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	// Walk down from the root, filling in listings along the way.
	current := c.Root()
	for _, segment := range paths.Split(path) {
		entries, err := c.ListChildren(ctx, current, false)
		if err != nil {
			return nil, err
		}
		var next *Entry
		for _, e := range entries {
			if e.Name == segment {
				next = e
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		current = next
	}
	return current, nil
}

// ListChildren returns the children of a directory entry. With forceRefresh
// the remote listing is fetched again even when cached; the recursive mkdir
// emulation depends on this, since a directory created one step earlier must
// show up in the next step's listing.
func (c *Cache) ListChildren(ctx context.Context, parent *Entry, forceRefresh bool) ([]*Entry, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent", types.ErrInvalidArgument)
	}

	if !forceRefresh {
		c.mu.RLock()
		childPaths, listed := c.children[parent.Path]
		if listed {
			entries := make([]*Entry, 0, len(childPaths))
			for _, p := range childPaths {
				if e, ok := c.nodes[p]; ok {
					entries = append(entries, e)
				}
			}
			c.mu.RUnlock()
			return entries, nil
		}
		c.mu.RUnlock()
	}

	listed, err := c.lister.List(ctx, parent.Path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	childPaths := make([]string, 0, len(listed))
	entries := make([]*Entry, 0, len(listed))
	for _, e := range listed {
		node := e
		if node.Path == "" {
			node.Path = paths.Combine(parent.Path, node.Name)
		}
		c.nodes[node.Path] = &node
		childPaths = append(childPaths, node.Path)
		entries = append(entries, &node)
	}
	c.children[parent.Path] = childPaths

	c.log.Debug("directory listed",
		zap.String("path", parent.Path),
		zap.Int("entries", len(entries)),
		zap.Bool("forced", forceRefresh))

	return entries, nil
}

// RegisterPlaceholder records a directory node for a path whose remote
// object may not exist yet. Registering an already-known path returns the
// existing entry unchanged.
func (c *Cache) RegisterPlaceholder(path string) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.nodes[path]; ok {
		return e
	}
	e := &Entry{Path: path, Name: paths.Base(path), Kind: KindDirectory}
	c.nodes[path] = e

	parent := paths.Parent(path)
	if _, listed := c.children[parent]; listed {
		c.children[parent] = append(c.children[parent], path)
	}
	return e
}

// Forget drops a path and its subtree from the cache. The facade calls this
// after a successful delete so stale nodes cannot keep resolving.
func (c *Cache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := path + paths.Separator
	for p := range c.nodes {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(c.nodes, p)
		}
	}
	for p := range c.children {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(c.children, p)
		}
	}
}
