package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir)
	require.NoError(t, err)

	_, found, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "products", []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, "products", []byte(`[1,2]`)))

	v, found, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2]`, string(v))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "products.json", entries[0].Name())
}

func TestStoreRejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Put(context.Background(), "../escape", []byte("x")))
	_, _, err = s.Get(context.Background(), "a/b")
	assert.Error(t, err)
}
