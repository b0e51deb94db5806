// Package command builds shell command lines for remote filesystem
// operations.
//
// Every builder is a pure function: the enhanced-toolset choice is passed in
// as a flag resolved elsewhere, and all path arguments must already be
// escaped by the caller. Builders never re-escape and never fail; argument
// validation belongs to the facade.
package command

import "strings"

// EnhancedTool is the multi-call binary providing the richer command set
// (recursive mkdir, dedicated touch, prefixed mount) when present on the
// target.
const EnhancedTool = "busybox"

// CreateFile returns the command creating an empty regular file.
//
// Without the enhanced tool the target may not ship touch at all, so the
// fallback is the shell redirect idiom, which any POSIX shell supports.
func CreateFile(path string, enhanced bool) string {
	if enhanced {
		return EnhancedTool + " touch " + path
	}
	return "> " + path
}

// MakeDirectoryAll returns the single-shot recursive directory creation
// command. Only valid when the enhanced tool is available; targets without
// it go through the segment-walk emulation instead.
func MakeDirectoryAll(path string) string {
	return EnhancedTool + " mkdir -p " + path
}

// MakeDirectory returns the plain single-segment directory creation command.
func MakeDirectory(path string) string {
	return "mkdir " + path
}

// Copy returns the copy command. Concatenation through a redirect is used
// instead of cp because not every target ships one; this loses permissions
// and metadata, and a missing destination directory surfaces as the
// redirect's own error text.
func Copy(source, destination string) string {
	return "cat " + source + " > " + destination
}

// Move returns the move command.
func Move(source, destination string) string {
	return "mv " + source + " " + destination
}

// Chmod returns the permission change command. Mode may be a literal string
// ("755") or the rendering of a PermSet; both produce identical arguments.
func Chmod(path, mode string) string {
	return "chmod " + mode + " " + path
}

// Delete returns the removal command, recursive only for directories.
func Delete(path string, recursive bool) string {
	if recursive {
		return "rm -r " + path
	}
	return "rm " + path
}

// MountPoint describes one mountable device. Immutable once constructed;
// it exists only to build mount and unmount command arguments and to answer
// the read-only query.
type MountPoint struct {
	Device   string // block device path, e.g. /dev/sda1
	Name     string // mount directory on the target
	FSType   string // filesystem type label, e.g. vfat
	ReadOnly bool
}

// Mount returns the mount command for mp.
//
// Argument order is a fixed contract: read-only/read-write flag, filesystem
// type flag, block device, mount directory, then the optional options flag.
// The target's shell parses positionally, so consumers building mount
// commands by hand must replicate this exact order.
func Mount(mp MountPoint, options string, enhanced bool) string {
	var b strings.Builder
	if enhanced {
		b.WriteString(EnhancedTool)
		b.WriteString(" ")
	}
	b.WriteString("mount ")
	if mp.ReadOnly {
		b.WriteString("-r")
	} else {
		b.WriteString("-w")
	}
	b.WriteString(" -t ")
	b.WriteString(mp.FSType)
	b.WriteString(" ")
	b.WriteString(mp.Device)
	b.WriteString(" ")
	b.WriteString(mp.Name)
	if options != "" {
		b.WriteString(" -o ")
		b.WriteString(options)
	}
	return b.String()
}

// Unmount returns the unmount command for a mount directory.
func Unmount(name string, enhanced bool) string {
	if enhanced {
		return EnhancedTool + " umount " + name
	}
	return "umount " + name
}
