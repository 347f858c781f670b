package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/repository"
)

func TestStateFile_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	repo, err := NewStateFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Get(ctx, "documents")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, repo.Put(ctx, "documents", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "documents", []byte(`[1,2]`)))

	v, err := repo.Get(ctx, "documents")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(v))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	require.NoError(t, repo.Delete(ctx, "documents"))
	require.NoError(t, repo.Delete(ctx, "documents"))
	_, err = repo.Get(ctx, "documents")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStateFile_RejectsPathKeys(t *testing.T) {
	repo, err := NewStateFile(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, repo.Put(context.Background(), "../escape", []byte(`1`)))
	_, err = repo.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestStateFile_Ping(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	repo, err := NewStateFile(dir)
	require.NoError(t, err)

	assert.NoError(t, repo.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, repo.Ping(context.Background()))
}

func TestStateFile_CanceledContext(t *testing.T) {
	repo, err := NewStateFile(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Put(ctx, "theme", []byte(`"dark"`)), context.Canceled)
}
