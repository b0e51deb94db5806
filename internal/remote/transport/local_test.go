package transport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
)

func TestLocalExecuteSilentSuccess(t *testing.T) {
	r := NewLocal(LocalConfig{}, logging.NewNop())
	defer r.Close()

	out, err := r.Execute(context.Background(), "true")
	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.Empty(t, out.Text)
}

func TestLocalExecuteCapturesStderr(t *testing.T) {
	r := NewLocal(LocalConfig{}, logging.NewNop())
	defer r.Close()

	out, err := r.Execute(context.Background(), "echo boom 1>&2")
	require.NoError(t, err)
	assert.False(t, out.OK())
	assert.Equal(t, "boom\n", out.Text)
}

func TestLocalSilentNonZeroExitStillSurfacesText(t *testing.T) {
	r := NewLocal(LocalConfig{}, logging.NewNop())
	defer r.Close()

	out, err := r.Execute(context.Background(), "exit 3")
	require.NoError(t, err)
	assert.False(t, out.OK())
	assert.NotEmpty(t, out.Text)
}

func TestLocalOutputCapturesStdout(t *testing.T) {
	r := NewLocal(LocalConfig{}, logging.NewNop())
	defer r.Close()

	stdout, out, err := r.Output(context.Background(), "echo hello")
	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.Equal(t, "hello\n", stdout)
}

func TestLocalExecuteAsRootPreservesQuotedArguments(t *testing.T) {
	r := NewLocal(LocalConfig{RootCommand: "sh -c"}, logging.NewNop())
	defer r.Close()

	target := filepath.Join(t.TempDir(), "a b.txt")
	out, err := r.ExecuteAsRoot(context.Background(), "touch "+paths.Escape(target))
	require.NoError(t, err)
	assert.True(t, out.OK(), "diagnostic text: %q", out.Text)

	_, err = os.Stat(target)
	assert.NoError(t, err, "the quoted path must survive the privilege wrapper")
}

func TestLocalExecuteAsRootWithoutPrefix(t *testing.T) {
	r := NewLocal(LocalConfig{}, logging.NewNop())
	defer r.Close()

	out, err := r.ExecuteAsRoot(context.Background(), "true")
	require.NoError(t, err)
	assert.True(t, out.OK())
}

func TestLocalClose(t *testing.T) {
	r := NewLocal(LocalConfig{}, logging.NewNop())
	require.True(t, r.Available())

	require.NoError(t, r.Close())
	assert.False(t, r.Available())

	_, err := r.Execute(context.Background(), "true")
	assert.Error(t, err)
}
