package rediskv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()
	s := New(rdb, "storefront:")

	_, found, err := s.Get(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "orders", []byte(`[]`)))

	v, found, err := s.Get(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(v))

	raw, err := mr.Get("storefront:orders")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
	assert.Zero(t, mr.TTL("storefront:orders"))
}

func TestStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	_, _, err := New(rdb, "").Get(context.Background(), "orders")
	assert.Error(t, err)
}
