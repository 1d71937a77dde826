package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTake_CopiesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "history.db")
	require.NoError(t, os.WriteFile(src, []byte("database bytes"), 0644))

	path, cleanup, err := Take(src)
	require.NoError(t, err)
	defer cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "database bytes", string(data))
	assert.NotEqual(t, src, path, "snapshot must be a separate file")
}

func TestTake_CleanupRemovesSnapshot(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "history.db")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	path, cleanup, err := Take(src)
	require.NoError(t, err)

	cleanup()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cleanup should remove the snapshot file")
}

func TestTake_MissingSourceFails(t *testing.T) {
	_, cleanup, err := Take(filepath.Join(t.TempDir(), "does-not-exist.db"))
	defer cleanup()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestTake_CleanupSafeAfterFailure(t *testing.T) {
	_, cleanup, err := Take(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)

	// Must not panic.
	cleanup()
	cleanup()
}

func TestTake_LargeFileChunks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.db")

	// Larger than one chunk so the chunked path would need multiple reads.
	payload := make([]byte, chunkSize*3+17)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(src, payload, 0644))

	path, cleanup, err := Take(src)
	require.NoError(t, err)
	defer cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
