package fs

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/shellfs/internal/remote/command"
	"github.com/GriffinCanCode/shellfs/internal/remote/tree"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// Mount mounts a device described by mp, with optional mount options.
// On success the mount point is recorded in the service's inventory, keyed
// by its mount directory.
func (s *Service) Mount(ctx context.Context, mp command.MountPoint, options string) error {
	if mp.Device == "" || mp.Name == "" {
		return fmt.Errorf("%w: mount needs a device and a directory", types.ErrInvalidArgument)
	}
	if !s.runner.Available() {
		return types.ErrNotReady
	}

	// The command gets escaped paths; the inventory keeps the raw ones.
	escaped := mp
	escaped.Device = paths.Escape(mp.Device)
	escaped.Name = paths.Escape(mp.Name)
	if err := s.execute(ctx, "mount", command.Mount(escaped, options, s.enhanced(ctx)), false); err != nil {
		return err
	}

	s.mountsMu.Lock()
	s.mounts[mp.Name] = mp
	s.mountsMu.Unlock()
	return nil
}

// MountDevice mounts from raw fields, normalizing onto the mount-point
// based path.
func (s *Service) MountDevice(ctx context.Context, directory, device, fstype string, readOnly bool, options string) error {
	return s.Mount(ctx, command.MountPoint{
		Device:   device,
		Name:     directory,
		FSType:   fstype,
		ReadOnly: readOnly,
	}, options)
}

// Unmount unmounts the given mount directory and drops it from the
// inventory.
func (s *Service) Unmount(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty mount directory", types.ErrInvalidArgument)
	}
	if !s.runner.Available() {
		return types.ErrNotReady
	}

	if err := s.execute(ctx, "unmount", command.Unmount(paths.Escape(name), s.enhanced(ctx)), false); err != nil {
		return err
	}

	s.mountsMu.Lock()
	delete(s.mounts, name)
	s.mountsMu.Unlock()
	return nil
}

// UnmountPoint unmounts a previously constructed mount point.
func (s *Service) UnmountPoint(ctx context.Context, mp command.MountPoint) error {
	return s.Unmount(ctx, mp.Name)
}

// IsMountPointReadOnly returns the read-only flag recorded for a mount
// directory. An unknown mount surfaces as NotFound.
func (s *Service) IsMountPointReadOnly(name string) (bool, error) {
	s.mountsMu.RLock()
	defer s.mountsMu.RUnlock()

	mp, ok := s.mounts[name]
	if !ok {
		return false, fmt.Errorf("%w: mount %s", types.ErrNotFound, name)
	}
	return mp.ReadOnly, nil
}

// MountPoints returns a snapshot of the mount inventory.
func (s *Service) MountPoints() []command.MountPoint {
	s.mountsMu.RLock()
	defer s.mountsMu.RUnlock()

	mounts := make([]command.MountPoint, 0, len(s.mounts))
	for _, mp := range s.mounts {
		mounts = append(mounts, mp)
	}
	return mounts
}

// DeviceBlocks lists the block device nodes under the well-known device
// directory.
func (s *Service) DeviceBlocks(ctx context.Context) ([]*tree.Entry, error) {
	dev, err := s.tree.FindEntry(ctx, paths.Dev)
	if err != nil {
		return nil, err
	}

	children, err := s.tree.ListChildren(ctx, dev, true)
	if err != nil {
		return nil, err
	}

	var blocks []*tree.Entry
	for _, e := range children {
		if e.Kind == tree.KindBlockDevice {
			blocks = append(blocks, e)
		}
	}
	return blocks, nil
}
