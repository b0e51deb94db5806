package command

import (
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// Perm is one octal digit of a POSIX permission set.
type Perm uint8

const (
	PermExec  Perm = 1 << iota // x
	PermWrite                  // w
	PermRead                   // r
)

const (
	PermNone Perm = 0
	PermRX        = PermRead | PermExec
	PermRW        = PermRead | PermWrite
	PermRWX       = PermRead | PermWrite | PermExec
)

// String renders the digit in symbolic rwx form.
func (p Perm) String() string {
	s := [3]byte{'-', '-', '-'}
	if p&PermRead != 0 {
		s[0] = 'r'
	}
	if p&PermWrite != 0 {
		s[1] = 'w'
	}
	if p&PermExec != 0 {
		s[2] = 'x'
	}
	return string(s[:])
}

// PermSet holds the owner/group/other permission digits of a remote entry.
type PermSet struct {
	Owner Perm
	Group Perm
	Other Perm
}

// Octal renders the set as the three-digit chmod argument, e.g. "755".
// Chmod(path, ps.Octal()) and a literal Chmod(path, "755") therefore build
// identical command lines.
func (ps PermSet) Octal() string {
	return fmt.Sprintf("%d%d%d", ps.Owner, ps.Group, ps.Other)
}

// Symbolic renders the set in ls-style form, e.g. "rwxr-xr-x".
func (ps PermSet) Symbolic() string {
	return ps.Owner.String() + ps.Group.String() + ps.Other.String()
}

// PermFromOctal parses a three-digit octal mode string into a PermSet.
func PermFromOctal(mode string) (PermSet, error) {
	if len(mode) != 3 {
		return PermSet{}, fmt.Errorf("%w: mode %q must be three octal digits", types.ErrInvalidArgument, mode)
	}
	n, err := strconv.ParseUint(mode, 8, 16)
	if err != nil {
		return PermSet{}, fmt.Errorf("%w: mode %q: %v", types.ErrInvalidArgument, mode, err)
	}
	return PermSet{
		Owner: Perm(n >> 6 & 7),
		Group: Perm(n >> 3 & 7),
		Other: Perm(n & 7),
	}, nil
}
