package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPathExists(t *testing.T) {
	exists, err := PathExists("/invalid/path/some-dir", true)
	assert.NoError(t, err)
	assert.False(t, exists)
	exists, err = PathExists("/invalid/path/some-file", false)
	assert.NoError(t, err)
	assert.False(t, exists)

	tempDir := t.TempDir()
	exists, err = PathExists(tempDir, true)
	assert.NoError(t, err)
	assert.True(t, exists)

	// a dir is not a file
	exists, err = PathExists(tempDir, false)
	assert.NoError(t, err)
	assert.False(t, exists)

	tempFile := filepath.Join(tempDir, "data.json")
	require.NoError(t, os.WriteFile(tempFile, []byte("{}"), 0o644))
	exists, err = PathExists(tempFile, false)
	assert.NoError(t, err)
	assert.True(t, exists)
}
