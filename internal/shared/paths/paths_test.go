package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, "/data/logs", Combine("/data", "logs"))
	assert.Equal(t, "/data/logs", Combine("/data/", "logs"))
	assert.Equal(t, "/logs", Combine("/", "logs"))
	assert.Equal(t, "/logs", Combine("", "logs"))
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("/a/b/c"))
	assert.Equal(t, []string{"a", "b"}, Split("a//b/"))
	assert.Nil(t, Split("/"))
}

func TestBaseAndParent(t *testing.T) {
	assert.Equal(t, "c", Base("/a/b/c"))
	assert.Equal(t, "/", Base("/"))
	assert.Equal(t, "/a/b", Parent("/a/b/c"))
	assert.Equal(t, "/", Parent("/a"))
	assert.Equal(t, "/", Parent("/"))
}

func TestEscapeQuotesShellMetacharacters(t *testing.T) {
	assert.Equal(t, "/plain/path", Escape("/plain/path"))
	assert.Equal(t, "'/with space/file'", Escape("/with space/file"))
	assert.Equal(t, `'/a;rm -rf /'`, Escape("/a;rm -rf /"))
}
