package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/repository"
)

func TestStateMemory(t *testing.T) {
	repo := NewStateMemory()
	ctx := context.Background()

	_, err := repo.Get(ctx, "theme")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	in := []byte(`"dark"`)
	require.NoError(t, repo.Put(ctx, "theme", in))
	in[1] = 'X'

	v, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(v), "stored values are copied")

	require.NoError(t, repo.Delete(ctx, "theme"))
	_, err = repo.Get(ctx, "theme")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	assert.NoError(t, repo.Ping(ctx))
}
