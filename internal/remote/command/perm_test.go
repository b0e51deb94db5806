package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermSetOctal(t *testing.T) {
	ps := PermSet{Owner: PermRWX, Group: PermRX, Other: PermRX}
	assert.Equal(t, "755", ps.Octal())
	assert.Equal(t, "rwxr-xr-x", ps.Symbolic())
}

// A literal "755" and the equivalent permission set must render identical
// chmod arguments.
func TestChmodLiteralAndSetAgree(t *testing.T) {
	ps, err := PermFromOctal("755")
	require.NoError(t, err)

	assert.Equal(t, Chmod("/x", "755"), Chmod("/x", ps.Octal()))
}

func TestPermFromOctal(t *testing.T) {
	tests := []struct {
		mode string
		want PermSet
	}{
		{"644", PermSet{Owner: PermRW, Group: PermRead, Other: PermRead}},
		{"700", PermSet{Owner: PermRWX, Group: PermNone, Other: PermNone}},
		{"777", PermSet{Owner: PermRWX, Group: PermRWX, Other: PermRWX}},
	}
	for _, tt := range tests {
		ps, err := PermFromOctal(tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ps)
		assert.Equal(t, tt.mode, ps.Octal())
	}
}

func TestPermFromOctalRejectsGarbage(t *testing.T) {
	for _, mode := range []string{"", "75", "7555", "abc", "788"} {
		_, err := PermFromOctal(mode)
		assert.Error(t, err, "mode %q", mode)
	}
}
