package app

import "context"

const (
	KeyProducts = "products"
	KeyOrders   = "orders"
)

// KV is the durable key-value store snapshots are written to.
type KV interface {
	// Get reports found=false, err=nil for a missing key.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}
